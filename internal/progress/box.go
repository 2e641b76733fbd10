// Package progress tracks per-card proficiency boxes.
package progress

import "fmt"

// Box is a Leitner proficiency level.
type Box int

const (
	Box1 Box = iota + 1
	Box2
	Box3
	Box4
	Box5
)

const (
	// MinBox is the level of unseen and failed cards.
	MinBox = Box1
	// MaxBox is the ceiling for promotion.
	MaxBox = Box5
)

// Boxes lists every level in ascending order.
var Boxes = []Box{Box1, Box2, Box3, Box4, Box5}

// Weight returns how many times a card in this box is replicated when
// sampling a round.
func (b Box) Weight() int {
	switch b {
	case Box1:
		return 6
	case Box2:
		return 4
	case Box3:
		return 2
	case Box4, Box5:
		return 1
	default:
		panic(fmt.Sprintf("progress: invalid box %d", int(b)))
	}
}

// Promote returns the next box, capped at MaxBox.
func (b Box) Promote() Box {
	if b >= MaxBox {
		return MaxBox
	}
	return b + 1
}

func (b Box) String() string {
	return fmt.Sprintf("box %d", int(b))
}

func clampBox(n int) Box {
	switch {
	case n < int(MinBox):
		return MinBox
	case n > int(MaxBox):
		return MaxBox
	default:
		return Box(n)
	}
}
