// Command inspect is not a disassembler: it loads a program image into a
// flat address map, decodes and steps one instruction at a time, and
// echoes exactly the typed value the decoder and register file produced.
// It mirrors the teacher's own Cpu.Debug TUI, generalized over both cores
// through the small target struct below.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"

	"github.com/ncatelli/go6502chip8/bus"
	"github.com/ncatelli/go6502chip8/cpu/chip8"
	"github.com/ncatelli/go6502chip8/cpu/mos6502"
)

// target is the minimal surface the inspector needs from either core: step
// one instruction, report the program counter, and hand back something
// spew can dump (the register file and whatever the decoder produced at
// the current PC).
type target struct {
	step     func() error
	pc       func() uint16
	registers func() interface{}
	decoded  func() interface{}
	bus      *bus.AddressMap
}

func newMos6502Target(b *bus.AddressMap, pc uint16) target {
	c := mos6502.New(b)
	c.PC = pc
	return target{
		step: func() error { _, err := c.Step(); return err },
		pc:   func() uint16 { return c.PC },
		registers: func() interface{} { return c.Registers },
		decoded: func() interface{} {
			instr, err := mos6502.Decode(b, c.PC)
			if err != nil {
				return err
			}
			return instr
		},
		bus: b,
	}
}

func newChip8Target(b *bus.AddressMap, pc uint16, random chip8.Random, keys chip8.Keys, display chip8.Display) target {
	c := chip8.New(b, random, keys, display)
	c.PC = pc
	return target{
		step: c.Step,
		pc:   func() uint16 { return c.PC },
		registers: func() interface{} { return c.Registers },
		decoded: func() interface{} {
			instr, err := chip8.Decode(b, c.PC)
			if err != nil {
				return err
			}
			return instr
		},
		bus: b,
	}
}

// noKeys and zeroRandom stand in for real I/O: the inspector is a decoder
// echo tool, not a player, so the CHIP-8 keypad always reports nothing
// down and RND always rolls zero.
type noKeys struct{}

func (noKeys) Pressed() (byte, bool) { return 0, false }
func (noKeys) IsDown(byte) bool      { return false }

type zeroRandom struct{}

func (zeroRandom) Byte() byte { return 0 }

type noDisplay struct{}

func (noDisplay) Clear()                  {}
func (noDisplay) SetRange(int, int, bool) {}

type model struct {
	target target
	offset uint16
	prevPC uint16
	err    error
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ", "j":
			m.prevPC = m.target.pc()
			if err := m.target.step(); err != nil {
				m.err = err
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

func (m model) renderPage(start uint16) string {
	s := fmt.Sprintf("%04x | ", start)
	pc := m.target.pc()
	for i := uint16(0); i < 16; i++ {
		b := m.target.bus.Read(start + i)
		if start+i == pc {
			s += fmt.Sprintf("[%02x] ", b)
		} else {
			s += fmt.Sprintf(" %02x  ", b)
		}
	}
	return s
}

func (m model) pageTable() string {
	header := "page | "
	for b := 0; b < 16; b++ {
		header += fmt.Sprintf("  %01x  ", b)
	}
	pc := m.target.pc()
	base := pc &^ 0x0f
	lines := []string{header}
	for i := -2; i <= 2; i++ {
		lines = append(lines, m.renderPage(base+uint16(i*16)))
	}
	return strings.Join(lines, "\n")
}

func (m model) status() string {
	return fmt.Sprintf("PC: %04x (prev %04x)\n%s", m.target.pc(), m.prevPC, spew.Sdump(m.target.registers()))
}

func (m model) View() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, m.pageTable(), m.status()),
		"",
		spew.Sdump(m.target.decoded()),
	)
}

func parseOffset(s string) (uint16, error) {
	v, err := strconv.ParseUint(strings.TrimPrefix(s, "0x"), 16, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid offset %q: %w", s, err)
	}
	return uint16(v), nil
}

func main() {
	romPath := flag.String("rom", "", "path to the program image to load")
	arch := flag.String("arch", "mos6502", "target architecture: mos6502 or chip8")
	offsetFlag := flag.String("offset", "0x0200", "hex address to load the program at and start the PC from")
	flag.Parse()

	if *romPath == "" {
		fmt.Fprintln(os.Stderr, "inspect: -rom is required")
		os.Exit(1)
	}

	offset, err := parseOffset(*offsetFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, "inspect:", err)
		os.Exit(1)
	}

	program, err := os.ReadFile(*romPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "inspect:", err)
		os.Exit(1)
	}

	b := bus.New()
	if err := b.Register(bus.Range{Start: 0x0000, End: 0x10000}, bus.NewMemory(0x0000, 0x10000)); err != nil {
		fmt.Fprintln(os.Stderr, "inspect:", err)
		os.Exit(1)
	}
	for i, v := range program {
		if _, err := b.Write(offset+uint16(i), v); err != nil {
			fmt.Fprintln(os.Stderr, "inspect: loading program:", err)
			os.Exit(1)
		}
	}

	var t target
	switch *arch {
	case "mos6502":
		t = newMos6502Target(b, offset)
	case "chip8":
		t = newChip8Target(b, offset, zeroRandom{}, noKeys{}, noDisplay{})
	default:
		fmt.Fprintf(os.Stderr, "inspect: unknown -arch %q (want mos6502 or chip8)\n", *arch)
		os.Exit(1)
	}

	m := model{target: t}
	if finalModel, err := tea.NewProgram(m).Run(); err != nil {
		fmt.Fprintln(os.Stderr, "inspect:", err)
		os.Exit(1)
	} else if fm := finalModel.(model); fm.err != nil {
		fmt.Println("stopped:", fm.err)
	}
}
