package forms

import (
	"errors"
	"net/url"
	"strconv"
	"strings"
)

// OTPLength is the number of digits in a verification code.
const OTPLength = 6

// ErrSlotOutOfRange is returned for a slot index outside [0, OTPLength).
var ErrSlotOutOfRange = errors.New("otp slot out of range")

// OTP is the verification code entry: one digit per slot and the slot that
// currently has focus.
type OTP struct {
	digits [OTPLength]string
	focus  int
}

// NewOTP returns an empty code with focus on the first slot.
func NewOTP() *OTP {
	return &OTP{}
}

// OTPFromValues restores a code from posted fields otp0..otp5 and focus.
// Slots that do not hold a single digit are treated as empty.
func OTPFromValues(v url.Values) *OTP {
	o := NewOTP()
	for i := range o.digits {
		if d := strings.TrimSpace(v.Get(SlotField(i))); isDigit(d) {
			o.digits[i] = d
		}
	}
	if focus, err := strconv.Atoi(v.Get("focus")); err == nil && focus >= 0 && focus < OTPLength {
		o.focus = focus
	}
	return o
}

// SlotField is the form field name of slot i.
func SlotField(i int) string {
	return "otp" + strconv.Itoa(i)
}

// Input applies a change to slot i. Non-numeric values are ignored. A
// digit moves focus to the next slot; an empty value clears the slot.
func (o *OTP) Input(i int, value string) error {
	if i < 0 || i >= OTPLength {
		return ErrSlotOutOfRange
	}
	if value != "" && !isDigit(value) {
		return nil
	}
	o.digits[i] = value
	o.focus = i
	if value != "" && i < OTPLength-1 {
		o.focus = i + 1
	}
	return nil
}

// Backspace handles the key on slot i. A filled slot is cleared in place;
// on an empty slot focus moves back one.
func (o *OTP) Backspace(i int) error {
	if i < 0 || i >= OTPLength {
		return ErrSlotOutOfRange
	}
	if o.digits[i] != "" {
		o.digits[i] = ""
		return nil
	}
	if i > 0 {
		o.focus = i - 1
	}
	return nil
}

// Digits returns a copy of the slots.
func (o *OTP) Digits() []string {
	return append([]string(nil), o.digits[:]...)
}

// Focus is the slot that receives the next keystroke.
func (o *OTP) Focus() int {
	return o.focus
}

// Code joins the slots.
func (o *OTP) Code() string {
	return strings.Join(o.digits[:], "")
}

// Complete reports whether every slot holds a digit.
func (o *OTP) Complete() bool {
	for _, d := range o.digits {
		if d == "" {
			return false
		}
	}
	return true
}

// Submit returns the route shown after verification.
// TODO: verify the code against the auth service once it exists.
func (o *OTP) Submit() string {
	return RouteDashboard
}

// ResendRoute is where "Resend OTP" leads.
func (o *OTP) ResendRoute() string {
	return RouteSignup
}

func isDigit(s string) bool {
	return len(s) == 1 && s[0] >= '0' && s[0] <= '9'
}
