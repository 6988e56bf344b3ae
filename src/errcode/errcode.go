package errcode

import "fmt"

// Err is the business error carried inside the HTTP response envelope.
// The code travels in the body, not in the HTTP status line.
type Err struct {
	code int
	msg  string
}

func NewErr(code int, msg string) *Err {
	return &Err{code: code, msg: msg}
}

// NewCustomErr wraps an ad-hoc message under the generic custom code.
func NewCustomErr(msg string) *Err {
	return NewErr(CodeCustom, msg)
}

func (e *Err) Code() int {
	return e.code
}

func (e *Err) Error() string {
	return e.msg
}

func (e *Err) String() string {
	return fmt.Sprintf("code: %d, msg: %s", e.code, e.msg)
}

const (
	CodeOK     = 200
	CodeCustom = 20001
)

var (
	ErrUnexpected    = NewErr(500, "server error, please try again later")
	ErrInvalidParams = NewErr(400, "invalid params")

	ErrWalletNotConnected = NewErr(41002, "wallet is not connected")
	ErrUserCancelled      = NewErr(41003, "request was cancelled in the wallet")
	ErrOfferNotFulfill    = NewErr(42001, "offer is missing order hash or protocol address")
)
