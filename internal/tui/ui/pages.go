package ui

import (
	"slices"

	"github.com/rivo/tview"
)

// Pages navigates the dashboard screens as a stack: records at the bottom,
// detail, reply and forms pushed on top. Esc pops.
type Pages struct {
	*tview.Pages
	stack    []string
	onChange func(stack []string)
}

func NewPages() *Pages {
	return &Pages{Pages: tview.NewPages()}
}

// SetOnChange registers fn to receive a copy of the stack after each move.
func (p *Pages) SetOnChange(fn func(stack []string)) {
	p.onChange = fn
}

// Push shows name on top. A page already on the stack is not duplicated:
// everything above it is dropped instead.
func (p *Pages) Push(name string) {
	if i := slices.Index(p.stack, name); i >= 0 {
		p.truncate(i + 1)
	} else {
		if top := p.Current(); top != "" {
			p.HidePage(top)
		}
		p.stack = append(p.stack, name)
	}
	p.show(name)
}

// Pop drops the top page and returns its name. The bottom page stays.
func (p *Pages) Pop() string {
	if len(p.stack) < 2 {
		return ""
	}
	top := p.Current()
	p.truncate(len(p.stack) - 1)
	p.show(p.Current())
	return top
}

func (p *Pages) Current() string {
	if len(p.stack) == 0 {
		return ""
	}
	return p.stack[len(p.stack)-1]
}

func (p *Pages) Stack() []string {
	return slices.Clone(p.stack)
}

func (p *Pages) Depth() int {
	return len(p.stack)
}

// Reset makes name the only page on the stack.
func (p *Pages) Reset(name string) {
	p.truncate(0)
	p.stack = append(p.stack, name)
	p.show(name)
}

func (p *Pages) truncate(n int) {
	for len(p.stack) > n {
		p.HidePage(p.stack[len(p.stack)-1])
		p.stack = p.stack[:len(p.stack)-1]
	}
}

func (p *Pages) show(name string) {
	p.ShowPage(name)
	p.SendToFront(name)
	if p.onChange != nil {
		p.onChange(p.Stack())
	}
}
