//go:build windows

// Package winrthelper holds the WinRT async call plumbing shared by the
// Windows media session backend.
package winrthelper

import (
	"context"
	"fmt"
	"unsafe"

	"github.com/go-ole/go-ole"
	"github.com/saltosystems/winrt-go"
	"github.com/saltosystems/winrt-go/windows/foundation"
)

// WinRT type signatures for primitive async result parameters.
const (
	SignatureBoolean = "b1"
	SignatureUInt32  = "u4"
)

// Await blocks until the async operation completes or ctx expires, and
// returns the operation's result pointer. resultSignature is the WinRT type
// signature of the operation's result parameter.
func Await(ctx context.Context, op *foundation.IAsyncOperation, resultSignature string) (unsafe.Pointer, error) {
	done := make(chan foundation.AsyncStatus, 1)

	iid := winrt.ParameterizedInstanceGUID(foundation.GUIDAsyncOperationCompletedHandler, resultSignature)
	handler := foundation.NewAsyncOperationCompletedHandler(ole.NewGUID(iid),
		func(_ *foundation.AsyncOperationCompletedHandler, _ *foundation.IAsyncOperation, status foundation.AsyncStatus) {
			done <- status
		},
	)
	defer handler.Release()

	if err := op.SetCompleted(handler); err != nil {
		return nil, err
	}

	if err := wait(ctx, done); err != nil {
		return nil, err
	}

	return op.GetResults()
}

// AwaitWithProgress is Await for async operations that report progress.
// The progress callbacks themselves are not surfaced.
func AwaitWithProgress(ctx context.Context, op *foundation.IAsyncOperationWithProgress, resultSignature, progressSignature string) (unsafe.Pointer, error) {
	done := make(chan foundation.AsyncStatus, 1)

	iid := winrt.ParameterizedInstanceGUID(
		foundation.GUIDAsyncOperationWithProgressCompletedHandler,
		resultSignature, progressSignature,
	)
	handler := foundation.NewAsyncOperationWithProgressCompletedHandler(ole.NewGUID(iid),
		func(_ *foundation.AsyncOperationWithProgressCompletedHandler, _ *foundation.IAsyncOperationWithProgress, status foundation.AsyncStatus) {
			done <- status
		},
	)
	defer handler.Release()

	if err := op.SetCompleted(handler); err != nil {
		return nil, err
	}

	if err := wait(ctx, done); err != nil {
		return nil, err
	}

	return op.GetResults()
}

func wait(ctx context.Context, done <-chan foundation.AsyncStatus) error {
	select {
	case status := <-done:
		if status != foundation.AsyncStatusCompleted {
			return fmt.Errorf("async operation finished with status %d", status)
		}

		return nil

	case <-ctx.Done():
		return ctx.Err()
	}
}
