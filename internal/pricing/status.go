package pricing

import (
	"errors"
	"fmt"
	"strconv"
)

type DeliveryStatus string

const (
	DeliveryPending   DeliveryStatus = "Pending"
	DeliveryShipped   DeliveryStatus = "Shipped"
	DeliveryDelivered DeliveryStatus = "Delivered"
	DeliveryCanceled  DeliveryStatus = "Canceled"
)

var ErrInvalidStatus = errors.New("invalid delivery status")

var progressByStatus = map[DeliveryStatus]int{
	DeliveryDelivered: 100,
	DeliveryShipped:   70,
	DeliveryPending:   30,
	DeliveryCanceled:  0,
}

func (s DeliveryStatus) Valid() bool {
	_, ok := progressByStatus[s]
	return ok
}

// DeliveryProgress maps a delivery status to the 0-100 value of the progress bar.
func DeliveryProgress(status DeliveryStatus) (int, error) {
	p, ok := progressByStatus[status]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidStatus, string(status))
	}
	return p, nil
}

// Badge is the icon and color tone shown next to the progress bar.
type Badge struct {
	Icon string `json:"icon"`
	Tone string `json:"tone"`
}

var badgeByStatus = map[DeliveryStatus]Badge{
	DeliveryDelivered: {Icon: "check-circle", Tone: "green"},
	DeliveryShipped:   {Icon: "truck", Tone: "blue"},
	DeliveryPending:   {Icon: "clock", Tone: "yellow"},
	DeliveryCanceled:  {Icon: "x-circle", Tone: "red"},
}

func StatusBadge(status DeliveryStatus) (Badge, error) {
	b, ok := badgeByStatus[status]
	if !ok {
		return Badge{}, fmt.Errorf("%w: %q", ErrInvalidStatus, string(status))
	}
	return b, nil
}

type Mood string

const (
	MoodHappy   Mood = "happy"
	MoodNeutral Mood = "neutral"
	MoodUnhappy Mood = "unhappy"
)

var faceByMood = map[Mood]string{
	MoodHappy:   "😀",
	MoodNeutral: "😐",
	MoodUnhappy: "😡",
}

// Glyph is the feedback indicator rendered in the order table.
type Glyph struct {
	Mood  Mood   `json:"mood"`
	Face  string `json:"face"`
	Title string `json:"title"`
}

func newGlyph(m Mood, title string) Glyph {
	return Glyph{Mood: m, Face: faceByMood[m], Title: title}
}

// SatisfactionDisplay picks the feedback glyph. Canceled and shipped/delivered
// orders ignore the stored rating; other statuses fall back to it.
func SatisfactionDisplay(status DeliveryStatus, rating *int) Glyph {
	switch status {
	case DeliveryCanceled:
		return newGlyph(MoodUnhappy, "Canceled")
	case DeliveryDelivered, DeliveryShipped:
		return newGlyph(MoodHappy, "Happy")
	}

	if rating == nil || *rating == 0 {
		return newGlyph(MoodNeutral, "Neutral")
	}

	title := strconv.Itoa(*rating)
	switch *rating {
	case 1:
		return newGlyph(MoodHappy, title)
	case 3:
		return newGlyph(MoodUnhappy, title)
	default:
		return newGlyph(MoodNeutral, title)
	}
}

var transitions = map[DeliveryStatus][]DeliveryStatus{
	DeliveryPending: {DeliveryShipped, DeliveryCanceled},
	DeliveryShipped: {DeliveryDelivered, DeliveryCanceled},
}

// CanTransition reports whether the delivery state machine allows from -> to.
// Delivered and Canceled are terminal; staying in the same state is allowed.
func CanTransition(from, to DeliveryStatus) bool {
	if !from.Valid() || !to.Valid() {
		return false
	}
	if from == to {
		return true
	}
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
