package record

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tuannm99/rowstore/internal/alias/bx"
)

// ---- Layout ----
// [id u32 LE][username: UsernameSize bytes, NUL padded][email: EmailSize bytes, NUL padded]
const (
	UsernameMaxLen = 32
	EmailMaxLen    = 255

	IDSize       = 4
	UsernameSize = UsernameMaxLen + 1 // +1 keeps a NUL terminator in every field
	EmailSize    = EmailMaxLen + 1

	IDOffset       = 0
	UsernameOffset = IDOffset + IDSize
	EmailOffset    = UsernameOffset + UsernameSize

	RowSize = IDSize + UsernameSize + EmailSize
)

// ---- Errors ----
var (
	ErrBadBuffer    = errors.New("record: buffer shorter than row size")
	ErrFieldTooLong = errors.New("record: field exceeds maximum length")
	ErrInvalidField = errors.New("record: field contains NUL byte")
)

// Row is the single fixed schema of the table.
type Row struct {
	ID       uint32
	Username string
	Email    string
}

func (r Row) String() string {
	return fmt.Sprintf("(%d %s %s)", r.ID, r.Username, r.Email)
}

// Validate checks the field bounds Encode relies on.
func (r Row) Validate() error {
	if len(r.Username) > UsernameMaxLen {
		return fmt.Errorf("%w: username is %d bytes, max %d", ErrFieldTooLong, len(r.Username), UsernameMaxLen)
	}
	if len(r.Email) > EmailMaxLen {
		return fmt.Errorf("%w: email is %d bytes, max %d", ErrFieldTooLong, len(r.Email), EmailMaxLen)
	}
	if strings.IndexByte(r.Username, 0) >= 0 || strings.IndexByte(r.Email, 0) >= 0 {
		return ErrInvalidField
	}
	return nil
}

// EncodeInto writes r into dst[:RowSize]. Bytes past RowSize are left untouched.
func EncodeInto(dst []byte, r Row) error {
	if len(dst) < RowSize {
		return ErrBadBuffer
	}
	if err := r.Validate(); err != nil {
		return err
	}

	bx.PutU32At(dst, IDOffset, r.ID)
	bx.PutPadded(dst, UsernameOffset, UsernameSize, r.Username)
	bx.PutPadded(dst, EmailOffset, EmailSize, r.Email)
	return nil
}

// Encode returns a freshly allocated RowSize buffer holding r.
func Encode(r Row) ([]byte, error) {
	out := make([]byte, RowSize)
	if err := EncodeInto(out, r); err != nil {
		return nil, err
	}
	return out, nil
}

// Decode reads a row from src[:RowSize]. The returned strings do not alias src.
func Decode(src []byte) (Row, error) {
	if len(src) < RowSize {
		return Row{}, ErrBadBuffer
	}
	return Row{
		ID:       bx.U32At(src, IDOffset),
		Username: bx.Padded(src, UsernameOffset, UsernameSize),
		Email:    bx.Padded(src, EmailOffset, EmailSize),
	}, nil
}
