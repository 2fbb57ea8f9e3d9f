package contact

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownLabel is returned when a label name or legacy code is not
// recognised.
var ErrUnknownLabel = errors.New("unknown label")

// Label is the paw identity assigned to a contact.
type Label int

const (
	Unlabeled Label = iota
	Invalid
	LeftFront
	LeftHind
	RightFront
	RightHind
)

// Labels lists every label in declaration order.
var Labels = []Label{Unlabeled, Invalid, LeftFront, LeftHind, RightFront, RightHind}

// Paws lists the four paw labels.
var Paws = []Label{LeftFront, LeftHind, RightFront, RightHind}

func (l Label) String() string {
	switch l {
	case Unlabeled:
		return "unlabeled"
	case Invalid:
		return "invalid"
	case LeftFront:
		return "LF"
	case LeftHind:
		return "LH"
	case RightFront:
		return "RF"
	case RightHind:
		return "RH"
	}
	return fmt.Sprintf("Label(%d)", int(l))
}

// IsPaw reports whether l names one of the four paws.
func (l Label) IsPaw() bool {
	return l >= LeftFront && l <= RightHind
}

// ParseLabel accepts the String form or the long paw names
// ("left-front", "right_hind", ...), case-insensitively.
func ParseLabel(s string) (Label, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer("_", "-", " ", "-").Replace(key)
	switch key {
	case "", "unlabeled", "unlabelled", "none":
		return Unlabeled, nil
	case "invalid":
		return Invalid, nil
	case "lf", "left-front":
		return LeftFront, nil
	case "lh", "left-hind":
		return LeftHind, nil
	case "rf", "right-front":
		return RightFront, nil
	case "rh", "right-hind":
		return RightHind, nil
	}
	return Unlabeled, fmt.Errorf("%w: %q", ErrUnknownLabel, s)
}

// MarshalText implements encoding.TextMarshaler.
func (l Label) MarshalText() ([]byte, error) {
	if l < Unlabeled || l > RightHind {
		return nil, fmt.Errorf("%w: %d", ErrUnknownLabel, int(l))
	}
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Label) UnmarshalText(b []byte) error {
	v, err := ParseLabel(string(b))
	if err != nil {
		return err
	}
	*l = v
	return nil
}

// Legacy signed label codes found in older stores.
const (
	legacyCurrent   = -1
	legacyUnlabeled = -2
	legacyInvalid   = -3
)

// LabelFromLegacy decodes an old signed label code. Code -1 meant "the
// contact currently selected in the labeling view" and decodes to an
// unlabeled, selected contact.
func LabelFromLegacy(code int) (label Label, selected bool, err error) {
	switch code {
	case legacyCurrent:
		return Unlabeled, true, nil
	case legacyUnlabeled:
		return Unlabeled, false, nil
	case legacyInvalid:
		return Invalid, false, nil
	case 0, 1, 2, 3:
		return Paws[code], false, nil
	}
	return Unlabeled, false, fmt.Errorf("%w: legacy code %d", ErrUnknownLabel, code)
}
