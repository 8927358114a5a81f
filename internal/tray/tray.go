package tray

import (
	_ "embed"
	"fmt"
	"log"
	"sync"

	"github.com/getlantern/systray"

	"github.com/openclaw/claw-runner/internal/models"
)

const maxActionSlots = 20

//go:embed icon.png
var iconData []byte

var (
	source  ActionSource
	onStart func()
	onExit  func()

	// Pre-allocated action menu slots
	actionSlots [maxActionSlots]*systray.MenuItem
	quitItem    *systray.MenuItem

	// Maps slot index → action ID
	slotMu      sync.RWMutex
	slotActions [maxActionSlots]string
)

// Run starts the system tray. This blocks the calling goroutine (must be main).
// onStartFn is called when the tray is ready (start the bus provider here).
// onExitFn is called when the tray exits (cleanup here).
func Run(src ActionSource, onStartFn, onExitFn func()) {
	source = src
	onStart = onStartFn
	onExit = onExitFn
	systray.Run(onReady, onQuit)
}

// Quit signals the tray to exit.
func Quit() {
	systray.Quit()
}

func onReady() {
	systray.SetIcon(iconData)
	systray.SetTitle("OpenClaw")

	header := systray.AddMenuItem("OpenClaw", "")
	header.Disable()
	systray.AddSeparator()

	// Pre-allocate action slots (hidden until Refresh)
	for i := 0; i < maxActionSlots; i++ {
		actionSlots[i] = systray.AddMenuItem("", "")
		actionSlots[i].Hide()
		go watchSlot(i)
	}

	systray.AddSeparator()
	quitItem = systray.AddMenuItem("Quit", "Stop claw-runner")

	if onStart != nil {
		onStart()
	}
	Refresh()

	go func() {
		<-quitItem.ClickedCh
		systray.Quit()
	}()
}

func onQuit() {
	if onExit != nil {
		onExit()
	}
}

func watchSlot(slot int) {
	for range actionSlots[slot].ClickedCh {
		activateSlot(slot)
	}
}

// activateSlot runs the action assigned to the given menu slot.
func activateSlot(slot int) {
	slotMu.RLock()
	id := slotActions[slot]
	slotMu.RUnlock()

	if id == "" || source == nil {
		return
	}

	log.Printf("[tray] activate %s (slot %d)", id, slot)
	source.Activate(id)
}

// Refresh reloads the action list from the source. Call it after the config
// changes.
func Refresh() {
	if source == nil || actionSlots[0] == nil {
		return
	}
	actions := source.MenuActions()

	slotMu.Lock()
	slotActions = assignSlots(actions)
	slotMu.Unlock()

	for i := 0; i < maxActionSlots; i++ {
		if i >= len(actions) {
			actionSlots[i].Hide()
			continue
		}
		actionSlots[i].SetTitle(formatActionTitle(actions[i]))
		actionSlots[i].SetTooltip(actions[i].Subtext)
		actionSlots[i].Show()
	}

	systray.SetTooltip(formatTooltip(source.Trigger(), len(actions)))
}

func assignSlots(actions []models.Action) [maxActionSlots]string {
	var slots [maxActionSlots]string
	for i, a := range actions {
		if i >= maxActionSlots {
			log.Printf("[tray] %d actions, only %d shown", len(actions), maxActionSlots)
			break
		}
		slots[i] = a.ID
	}
	return slots
}

func formatTooltip(trigger string, actions int) string {
	return fmt.Sprintf("OpenClaw: %d actions, type %q in KRunner", actions, trigger)
}

func formatActionTitle(a models.Action) string {
	switch a.Kind {
	case models.KindServiceControl:
		return fmt.Sprintf("⚙ %s", a.Label)
	case models.KindFollowLog, models.KindTerminalCommand:
		return fmt.Sprintf("▤ %s", a.Label)
	default:
		return a.Label
	}
}
