/*
© 2021–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

package pexec

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"sync"
	"syscall"

	"github.com/beeql/beeql/perrors"
	"github.com/beeql/beeql/plog"
	"golang.org/x/sys/unix"
)

var ErrArgsListEmpty = errors.New("args list empty")

// ExecStream executes a system command using the exec.Cmd type and flexible streaming.
//   - ExecStream blocks during command execution
//   - ExecStream returns any error occurring during launch or execution including
//     errors in copy threads
//   - successful exit is: statusCode == 0, isCancel == false, err == nil
//   - statusCode may be set by the process but is otherwise:
//   - — 0 successful exit
//   - — -1 process was killed by signal such as ^C or SIGTERM
//   - context cancel exit is: statusCode == -1, isCancel == true, err == nil
//   - failure exit is: statusCode != 0, isCancel == false, err != nil
//   - —
//   - args is the command followed by arguments.
//   - args[0] must specify an executable in the file system.
//     env.PATH is used to resolve the command executable
//   - if stdin stdout or stderr are nil, the are /dev/null
//     Additional threads are used to copy data when stdin stdout or stderr are non-nil
//   - os.Stdin os.Stdout os.Stderr can be provided
//   - any stream provided is not closed. However, upon return from ExecStream all i/o operations
//     have completed and streams may be closed as the case may be
//   - ctx is used to kill the process (by calling os.Process.Kill) if the context becomes
//     done before the command completes on its own
func ExecStream(stdin io.Reader, stdout io.WriteCloser, stderr io.WriteCloser,
	ctx context.Context, args ...string) (statusCode int, isCancel bool, err error) {
	return ExecStreamFull(stdin, stdout, stderr, nil, ctx, nil, nil, args...)
}

// ExecStreamFull executes a system command using the exec.Cmd type and flexible streaming.
//   - ExecStreamFull blocks during command execution
//   - ExecStreamFull returns any error occurring during launch or execution including
//     errors in copy threads
//   - successful exit is: statusCode == 0, isCancel == false, err == nil
//   - statusCode may be set by the process but is otherwise:
//   - — 0 successful exit
//   - — -1 process was killed by signal such as ^C or SIGTERM
//   - context cancel exit is: statusCode == -1, isCancel == true, err == nil
//   - failure exit is: statusCode != 0, isCancel == false, err != nil
//   - —
//   - args is the command followed by arguments.
//   - args[0] must specify an executable in the file system.
//     env.PATH is used to resolve the command executable
//   - if stdin stdout or stderr are nil, the are /dev/null
//     Additional threads are used to copy data when stdin stdout or stderr are non-nil
//   - startCallback is invoked immediately after cmd.Exec.Start returns with
//     its result. To not use a callback, set startCallback to nil
//   - If env is nil, the new process uses the current process’ environment
func ExecStreamFull(stdin io.Reader, stdout io.WriteCloser, stderr io.WriteCloser,
	env []string, ctx context.Context, startCallback func(err error), extraFiles []*os.File,
	args ...string) (statusCode int, isCancel bool, err error) {
	if len(args) == 0 {
		err = perrors.ErrorfPF("%w", ErrArgsListEmpty)
		return
	}

	// execCtx allows for local cancel, ie. failing copyThreads
	execCtx, execCancel := context.WithCancel(ctx)
	defer execCancel()

	// thread management: waitgroup and thread-safe error store
	var wg sync.WaitGroup
	defer plog.D("waitgroup complete")
	defer wg.Wait()
	var errs perrors.ParlError
	defer func() {
		err = perrors.AppendError(err, errs.GetError())
	}()

	// close if we are aborting
	var closers []io.Closer
	isStart := false
	defer plog.D("closers complete")
	defer func() {
		if isStart {
			return // do nothing: if exec.Cmd.Start succeeded, exe.Cmd close the streams
		}
		for _, c := range closers {
			if e := c.Close(); e != nil {
				err = perrors.AppendError(err, perrors.ErrorfPF("stream Close %w", e))
			}
		}
	}()

	// get Cmd structure, possibly resolve args[0] using environment PATH
	var execCmd *exec.Cmd = exec.CommandContext(execCtx, args[0], args[1:]...)

	// possibly replace current process's environment os.Environ()
	if env != nil {
		execCmd.Env = env
	}

	// pipe stdin to process
	if stdin != nil {
		if stdin == os.Stdin {
			execCmd.Stdin = stdin
		} else {
			var ioWriteCloser io.WriteCloser
			if ioWriteCloser, err = execCmd.StdinPipe(); err != nil {
				err = perrors.ErrorfPF("execCmd.StdinPipe %w", err)
				return // pipe error return
			}
			wg.Add(1)
			go copyThread("stdin", stdin, ioWriteCloser, errs.AddErrorProc, execCancel, &wg)
		}
	}

	// pipe stdout to process
	if stdout != nil {
		if stdout == os.Stdout || stdout == os.Stderr {
			execCmd.Stdout = stdout
		} else {
			var ioReadCloser io.ReadCloser
			if ioReadCloser, err = execCmd.StdoutPipe(); err != nil {
				err = perrors.ErrorfPF("execCmd.StdoutPipe %w", err)
				return // pipe error return
			}
			wg.Add(1)
			go copyThread("stdout", ioReadCloser, stdout, errs.AddErrorProc, execCancel, &wg)
		}
	}

	// pipe stderr to process
	if stderr != nil {
		if stderr == os.Stdout || stderr == os.Stderr {
			execCmd.Stderr = stderr
		} else {
			var ioReadCloser io.ReadCloser
			if ioReadCloser, err = execCmd.StderrPipe(); err != nil {
				err = perrors.ErrorfPF("execCmd.StderrPipe %w", err)
				return // pipe error return
			}
			wg.Add(1)
			go copyThread("stderr", ioReadCloser, stderr, errs.AddErrorProc, execCancel, &wg)
		}
	}

	if len(extraFiles) > 0 {
		execCmd.ExtraFiles = extraFiles
	}

	// execute
	plog.D("Start")
	if err = execCmd.Start(); err != nil {
		err = perrors.ErrorfPF("execCmd.Start %w", err)
	}
	isStart = true
	if startCallback != nil {
		invokeStartCallback(startCallback, err, &errs)
	}
	if err != nil {
		return // command Start error return
	}

	plog.D("Wait")
	if err = execCmd.Wait(); err != nil {
		err = perrors.ErrorfPF("execCmd.Wait %w", err)
	}
	plog.D("Wait complete")
	if err != nil {
		var hasStatusCode bool
		var signal syscall.Signal
		hasStatusCode, statusCode, signal = ExitError(err)

		// was the context canceled?
		if execCtx.Err() != nil &&
			hasStatusCode && // there was an exec.ExitError
			statusCode == TerminatedBySignal && // the process was terminated by a signal
			signal == unix.SIGKILL { // in fact SIGKILL
			// if it was SIGKILL, ignore it: it was cuased by context cancelation
			err = nil // ignore the error
			isCancel = true
		}

		return // Wait() error return
	}
	return // command completed successfully return
}

// invokeStartCallback invokes startCallback, converting any panic to an error
// appended to errs
func invokeStartCallback(startCallback func(err error), startErr error, errs *perrors.ParlError) {
	var e error
	defer func() {
		if v := recover(); v != nil {
			if err2, ok := v.(error); ok {
				e = err2
			} else {
				e = perrors.Errorf("startCallback panic: %v", v)
			}
		}
		if e != nil {
			errs.AddErrorProc(perrors.ErrorfPF("startCallback %w", e))
		}
	}()
	startCallback(startErr)
}
