package krunner

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/introspect"
)

// D-Bus coordinates the host is told about in the manifest.
const (
	BusName    = "ai.openclaw.ClawRunner"
	ObjectPath = dbus.ObjectPath("/runner")
	Interface  = "org.kde.krunner1"
)

// MatchExact is KRunner's QueryMatch::ExactMatch type.
const MatchExact = 100

// ErrNameTaken is returned when another runner already owns BusName.
var ErrNameTaken = errors.New("bus name already owned")

// RemoteAction is the (sss) struct of Actions().
type RemoteAction struct {
	ID       string
	Text     string
	IconName string
}

// RemoteMatch is the (sssida{sv}) struct of Match().
type RemoteMatch struct {
	ID         string
	Text       string
	IconName   string
	Type       int32
	Relevance  float64
	Properties map[string]dbus.Variant
}

// remoteRunner is the object exported on the bus. Only methods whose last
// result is *dbus.Error become D-Bus methods.
type remoteRunner struct {
	p *Provider
}

func (r remoteRunner) Actions() ([]RemoteAction, *dbus.Error) {
	out := make([]RemoteAction, len(SecondaryActions))
	for i, a := range SecondaryActions {
		out[i] = RemoteAction{ID: a.ID, Text: a.Text, IconName: a.Icon}
	}
	return out, nil
}

func (r remoteRunner) Match(query string) ([]RemoteMatch, *dbus.Error) {
	actions := r.p.Match(query)
	out := make([]RemoteMatch, 0, len(actions))
	for _, a := range actions {
		out = append(out, RemoteMatch{
			ID:        a.ID,
			Text:      a.Label,
			IconName:  a.Icon,
			Type:      MatchExact,
			Relevance: a.Relevance,
			Properties: map[string]dbus.Variant{
				"subtext": dbus.MakeVariant(a.Subtext),
				"actions": dbus.MakeVariant(secondaryFor(a)),
			},
		})
	}
	return out, nil
}

func (r remoteRunner) Run(matchID, actionID string) *dbus.Error {
	if err := r.p.Run(matchID, actionID); err != nil {
		return dbus.MakeFailedError(err)
	}
	return nil
}

func (r remoteRunner) SetActivationToken(token string) *dbus.Error {
	r.p.SetActivationToken(token)
	return nil
}

func (r remoteRunner) Teardown() *dbus.Error {
	r.p.Teardown()
	return nil
}

// Config tells Plasma 6 to only query us for the trigger word.
func (r remoteRunner) Config() (map[string]dbus.Variant, *dbus.Error) {
	return map[string]dbus.Variant{
		"TriggerWords":   dbus.MakeVariant([]string{r.p.Trigger()}),
		"MinLetterCount": dbus.MakeVariant(int32(len(r.p.Trigger()))),
	}, nil
}

func introspectNode(r remoteRunner) *introspect.Node {
	return &introspect.Node{
		Name: string(ObjectPath),
		Interfaces: []introspect.Interface{
			introspect.IntrospectData,
			{
				Name:    Interface,
				Methods: introspect.Methods(r),
			},
		},
	}
}

// Serve exports p on the session bus and blocks until ctx is done. Actions
// still running when ctx ends are waited for before returning.
func Serve(ctx context.Context, p *Provider) error {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return fmt.Errorf("connect session bus: %w", err)
	}
	defer conn.Close()

	obj := remoteRunner{p: p}
	if err := conn.Export(obj, ObjectPath, Interface); err != nil {
		return fmt.Errorf("export %s: %w", Interface, err)
	}
	if err := conn.Export(introspect.NewIntrospectable(introspectNode(obj)), ObjectPath, "org.freedesktop.DBus.Introspectable"); err != nil {
		return fmt.Errorf("export introspection: %w", err)
	}

	reply, err := conn.RequestName(BusName, dbus.NameFlagDoNotQueue)
	if err != nil {
		return fmt.Errorf("request name %s: %w", BusName, err)
	}
	if reply != dbus.RequestNameReplyPrimaryOwner {
		return fmt.Errorf("%w: %s", ErrNameTaken, BusName)
	}
	log.Printf("[krunner] serving %s at %s", BusName, ObjectPath)

	<-ctx.Done()

	if _, err := conn.ReleaseName(BusName); err != nil {
		log.Printf("[krunner] release name: %v", err)
	}
	p.Wait()
	log.Println("[krunner] stopped")
	return nil
}
