package commands

import (
	"unicode/utf8"

	"ar-furniture/internal/logger"
)

// Console is the developer console model: an input line, submit history, and open state.
// Every submitted line is logged; lines starting with "cmd " run through the registry and
// their errors are logged too. The renderer feeds keystrokes in and draws Input and the log.
type Console struct {
	log     *logger.Logger
	reg     *Registry
	input   string
	open    bool
	history []string
	// histPos indexes history while browsing with Prev/Next; len(history) means the fresh line.
	histPos int
}

// NewConsole returns a closed console logging to log and running commands through reg.
func NewConsole(log *logger.Logger, reg *Registry) *Console {
	return &Console{log: log, reg: reg}
}

// Toggle opens or closes the console.
func (c *Console) Toggle() {
	c.open = !c.open
}

// IsOpen reports whether the console is capturing input.
func (c *Console) IsOpen() bool {
	return c.open
}

// Type appends text to the input line.
func (c *Console) Type(text string) {
	c.input += text
}

// Backspace removes the last rune of the input line.
func (c *Console) Backspace() {
	if c.input == "" {
		return
	}
	_, size := utf8.DecodeLastRuneInString(c.input)
	c.input = c.input[:len(c.input)-size]
}

// Input returns the current input line.
func (c *Console) Input() string {
	return c.input
}

// Submit logs and runs the input line and clears it. Returns the command error, if any.
func (c *Console) Submit() error {
	line := c.input
	if line == "" {
		return nil
	}
	c.input = ""
	c.history = append(c.history, line)
	c.histPos = len(c.history)
	return c.Run(line)
}

// Run logs and executes line as if it were typed.
func (c *Console) Run(line string) error {
	c.log.Log("> " + line)
	args, isCmd := Parse(line)
	if !isCmd {
		c.log.Log(`commands start with "cmd " (try "cmd help")`)
		return nil
	}
	if err := c.reg.Execute(args); err != nil {
		c.log.Log(err.Error())
		return err
	}
	return nil
}

// Prev replaces the input with the previous history entry.
func (c *Console) Prev() {
	if c.histPos > 0 {
		c.histPos--
		c.input = c.history[c.histPos]
	}
}

// Next moves forward in history, ending on an empty line.
func (c *Console) Next() {
	if c.histPos >= len(c.history) {
		return
	}
	c.histPos++
	if c.histPos == len(c.history) {
		c.input = ""
		return
	}
	c.input = c.history[c.histPos]
}

// Lines returns the log lines the console shows.
func (c *Console) Lines() []string {
	return c.log.Lines()
}
