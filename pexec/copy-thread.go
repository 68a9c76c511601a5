/*
© 2021–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

package pexec

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"sync"

	"github.com/beeql/beeql/perrors"
)

// copyThread copies from a io.Reader to io.Writer.
//   - label is used for thread identification on panics
//   - reader could be the stdin io.Reader being copied to the execCmd.StdinPipe Writer
//   - addError receives panics
//   - on panic cancel is invoked, terminating the command
//   - the thread itself never fails
func copyThread(label string,
	reader io.Reader, writer io.Writer,
	addError func(err error), cancel context.CancelFunc,
	wg *sync.WaitGroup) {
	defer wg.Done()
	var err error
	defer func() {
		if err != nil {
			cancel() // cancel the command if copyThread fails
			addError(err)
		}
	}()
	defer func() {
		if v := recover(); v != nil {
			if err2, ok := v.(error); ok {
				err = perrors.AppendError(err, err2)
			} else {
				err = perrors.AppendError(err, perrors.Errorf("copy command i/o %s panic: %v", label, v))
			}
		}
	}()

	if _, err = io.Copy(writer, reader); err != nil {
		err = perrors.Errorf("%s io.Copy %w", label, err)

		// if the process terminates quickly, exec.Command might have already closed
		// stdout stderr before the copyThread is scheduled to start
		if errors.Is(err, fs.ErrClosed) {
			err = nil // ignore quickly closed errors
		}
	}
}
