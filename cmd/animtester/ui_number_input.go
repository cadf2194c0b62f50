package main

import (
	"strconv"
	"strings"

	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// numberInput is a labelled text field with step buttons. Submitting the
// field or pressing a step button reports the new value.
type numberInput struct {
	Container *widget.Container

	input    *widget.TextInput
	value    float64
	step     float64
	decimals int
	onChange func(v float64)
}

func newNumberInput(
	parent *widget.Container,
	theme *widget.Theme,
	fontFace *text.Face,
	label string,
	step float64,
	decimals int,
	onChange func(v float64),
) *numberInput {
	n := &numberInput{step: step, decimals: decimals, onChange: onChange}

	row := newRow(4)
	row.AddChild(newLabel(label, fontFace))
	n.input = newTextInput(fontFace, 80, "", func(text string) {
		v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err != nil {
			n.SetValue(n.value)
			return
		}
		n.commit(v)
	})
	row.AddChild(n.input)
	row.AddChild(newButton(theme, fontFace, "-", func() { n.commit(n.value - n.step) }))
	row.AddChild(newButton(theme, fontFace, "+", func() { n.commit(n.value + n.step) }))

	parent.AddChild(row)
	n.Container = row
	return n
}

func (n *numberInput) commit(v float64) {
	n.SetValue(v)
	if n.onChange != nil {
		n.onChange(v)
	}
}

// SetValue updates the shown value without reporting a change.
func (n *numberInput) SetValue(v float64) {
	n.value = v
	n.input.SetText(strconv.FormatFloat(v, 'f', n.decimals, 64))
}

func (n *numberInput) Value() float64 {
	return n.value
}
