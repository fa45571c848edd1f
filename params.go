package vtparse

import (
	"fmt"
	"strings"
)

// MaxParams is the parameter accumulator's capacity: the maximum number of
// parameters and subparameters a single CSI or DCS body may carry. The
// specification requires at least 16; colon-separated subparameters (e.g.
// SGR true-color's "38:2:r:g:b") count against the same budget as
// semicolon-separated ones.
const MaxParams = 32

// Params is the fixed-capacity parameter accumulator described by the
// parameter/intermediate store: an ordered sequence of non-negative 32-bit
// integers built up one PARAM action at a time, with colon-delimited
// subparameter groups tracked alongside it. Capacity overflow does not
// panic or grow the buffer; the caller is expected to check IsFull and set
// the parser's sticky ignore flag, exactly as the dispatcher does.
type Params struct {
	values   [MaxParams]uint32
	groupLen [MaxParams]uint8 // number of values in the group starting at this index; 0 if not a group start
	len      int
}

// NewParams returns an empty parameter accumulator.
func NewParams() *Params {
	return &Params{}
}

// Len returns the total number of values currently stored, counting every
// subparameter.
func (p *Params) Len() int {
	return p.len
}

// IsEmpty reports whether no parameter or subparameter has been seen yet.
func (p *Params) IsEmpty() bool {
	return p.len == 0
}

// IsFull reports whether the accumulator has reached MaxParams and can
// accept no further values.
func (p *Params) IsFull() bool {
	return p.len >= MaxParams
}

// Clear resets the accumulator to empty. This is the CLEAR action's effect
// on the parameter half of the store; it never touches the print buffer.
func (p *Params) Clear() {
	p.len = 0
	for i := range p.groupLen {
		p.groupLen[i] = 0
	}
}

// Push starts a new semicolon-delimited parameter. Saturates silently (no
// write, no panic) once IsFull; callers must check IsFull first if they
// need to flag the overflow.
func (p *Params) Push(value uint32) {
	if p.IsFull() {
		return
	}
	p.values[p.len] = value
	p.groupLen[p.len] = 1
	p.len++
}

// Extend appends a colon-delimited subparameter to the most recently
// started parameter group. If no group has been started yet, it behaves
// like Push.
func (p *Params) Extend(value uint32) {
	if p.IsFull() {
		return
	}
	groupStart := p.len - 1
	for groupStart >= 0 && p.groupLen[groupStart] == 0 {
		groupStart--
	}
	if groupStart < 0 {
		p.Push(value)
		return
	}
	p.values[p.len] = value
	p.groupLen[p.len] = 0
	p.groupLen[groupStart]++
	p.len++
}

// All returns every value in order, flattening subparameter groups. This is
// the view the specification describes as params[0..num_params].
func (p *Params) All() []uint32 {
	if p.len == 0 {
		return nil
	}
	return append([]uint32(nil), p.values[:p.len]...)
}

// Iter groups values by their colon subparameter structure: each returned
// slice is one semicolon-delimited parameter together with any
// colon-delimited subparameters that followed it.
func (p *Params) Iter() [][]uint32 {
	if p.len == 0 {
		return nil
	}
	var groups [][]uint32
	for i := 0; i < p.len; {
		count := int(p.groupLen[i])
		if count == 0 {
			i++
			continue
		}
		group := make([]uint32, 0, count)
		for j := 0; j < count && i+j < p.len; j++ {
			group = append(group, p.values[i+j])
		}
		groups = append(groups, group)
		i += count
	}
	return groups
}

// String renders the parameters the way they appeared on the wire:
// semicolons between parameters, colons between subparameters.
func (p *Params) String() string {
	groups := p.Iter()
	if len(groups) == 0 {
		return "Params{}"
	}
	parts := make([]string, 0, len(groups))
	for _, group := range groups {
		if len(group) == 1 {
			parts = append(parts, fmt.Sprintf("%d", group[0]))
			continue
		}
		sub := make([]string, 0, len(group))
		for _, v := range group {
			sub = append(sub, fmt.Sprintf("%d", v))
		}
		parts = append(parts, strings.Join(sub, ":"))
	}
	return fmt.Sprintf("Params{%s}", strings.Join(parts, ";"))
}
