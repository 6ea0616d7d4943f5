package models

import (
	"io"

	"github.com/lunixbochs/struc"
)

// StrucStream packs values one after another onto a stream.
type StrucStream struct {
	Stream  io.ReadWriter
	Options *struc.Options
}

func (s *StrucStream) Pack(vals ...interface{}) error {
	for _, i := range vals {
		if err := struc.PackWithOptions(s.Stream, i, s.Options); err != nil {
			return err
		}
	}
	return nil
}

func (s *StrucStream) Unpack(vals ...interface{}) error {
	for _, i := range vals {
		if err := struc.UnpackWithOptions(s.Stream, i, s.Options); err != nil {
			return err
		}
	}
	return nil
}
