package terminal

import (
	"strings"
	"unicode/utf8"

	"cube-engine/internal/commands"
	"cube-engine/internal/logger"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	BarHeight = 40
	// ToggleKey opens and closes the terminal. Escape stays bound to closing the window.
	ToggleKey = rl.KeyGrave
	prompt    = "> "
	fontSize  = 20
	padding   = 8
	// Number of log lines drawn above the input bar when the terminal is open.
	maxLinesOnScreen = 12
	lineHeight       = fontSize + 4
	maxLineLen       = 160
)

var (
	// Reused every frame when drawing the terminal bar to avoid per-frame color allocations.
	termBarColor    = rl.NewColor(40, 40, 40, 255)
	termLineColor   = rl.NewColor(80, 80, 80, 255)
	termChatBgColor = rl.NewColor(24, 24, 24, 220)
)

// Terminal is the command bar at the bottom of the screen, shown and hidden with ToggleKey.
// When open it shows the recent log lines and runs each submitted line through the command
// registry, e.g. "fps -show" or "reset". Pointer gestures keep working while it is open.
type Terminal struct {
	log      *logger.Logger
	reg      *commands.Registry
	inputBuf string
	open     bool
}

// New returns a closed terminal that logs lines and runs them through reg.
func New(log *logger.Logger, reg *commands.Registry) *Terminal {
	return &Terminal{log: log, reg: reg}
}

// IsOpen returns true when the terminal is visible and capturing keys.
func (t *Terminal) IsOpen() bool {
	return t.open
}

// Submit echoes line to the log and executes it. Errors are logged, never returned: a typo in
// the terminal must not stop the frame loop.
func (t *Terminal) Submit(line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	t.log.Log(prompt + line)
	if err := t.reg.Execute(strings.Fields(line)); err != nil {
		t.log.Log(err.Error())
	}
}

// Update handles the toggle key and, when open, typing, backspace and enter. Call once per frame.
func (t *Terminal) Update() {
	if rl.IsKeyPressed(ToggleKey) {
		t.open = !t.open
		// Drain the toggle character so it does not land in the buffer.
		for rl.GetCharPressed() != 0 {
		}
		return
	}
	if !t.open {
		return
	}
	for {
		c := rl.GetCharPressed()
		if c == 0 {
			break
		}
		t.inputBuf += string(rune(c))
	}
	if rl.IsKeyPressed(rl.KeyBackspace) && len(t.inputBuf) > 0 {
		_, size := utf8.DecodeLastRuneInString(t.inputBuf)
		t.inputBuf = t.inputBuf[:len(t.inputBuf)-size]
	}
	if rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeyKpEnter) {
		line := t.inputBuf
		t.inputBuf = ""
		t.Submit(line)
	}
}

// Draw draws the bar at the bottom when open, and the recent log lines above it.
func (t *Terminal) Draw() {
	if !t.open {
		return
	}
	screenW := int32(rl.GetScreenWidth())
	barY := int32(rl.GetScreenHeight()) - BarHeight

	chatHeight := int32(maxLinesOnScreen * lineHeight)
	chatY := barY - chatHeight
	if chatY < 0 {
		chatHeight = barY
		chatY = 0
	}
	if chatHeight > 0 {
		rl.DrawRectangle(0, chatY, screenW, chatHeight, termChatBgColor)
	}
	for i, line := range t.log.Last(maxLinesOnScreen) {
		if len(line) > maxLineLen {
			line = line[:maxLineLen-3] + "..."
		}
		rl.DrawText(line, padding, chatY+int32(i*lineHeight)+padding, fontSize, rl.LightGray)
	}

	rl.DrawRectangle(0, barY, screenW, BarHeight, termBarColor)
	rl.DrawRectangle(0, barY, screenW, 1, termLineColor)
	rl.DrawText(prompt+t.inputBuf+"|", padding, barY+padding, fontSize, rl.White)
}
