// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package resolutionerrors

import (
	"errors"

	"daml.com/x/depres/pkg/module"
)

const (
	RevisionNotFound      = "REVISION_NOT_FOUND"
	DescriptorFetchFailed = "DESCRIPTOR_FETCH_FAILED"
	ArtifactFetchFailed   = "ARTIFACT_FETCH_FAILED"
	UnsupportedOperation  = "UNSUPPORTED_OPERATION"
	RepositoryUnreachable = "REPOSITORY_UNREACHABLE"
	UnknownError          = "UNKNOWN_ERROR"
)

type ResolutionError struct {
	Code string
	// zero when the error isn't about one particular module
	Module module.RevisionID
	Cause  error
}

func (r *ResolutionError) Error() string {
	msg := r.Code
	if r.Module != (module.RevisionID{}) {
		msg += " " + r.Module.String()
	}
	if r.Cause != nil {
		msg += ": " + r.Cause.Error()
	}
	return msg
}

func (r *ResolutionError) MarshalYAML() (interface{}, error) {
	var causeStr string
	if r.Cause != nil {
		causeStr = r.Cause.Error()
	}
	return map[string]interface{}{
		"code":   r.Code,
		"module": r.Module.String(),
		"cause":  causeStr,
	}, nil
}

func (r *ResolutionError) Unwrap() error {
	return r.Cause
}

var _ error = (*ResolutionError)(nil)

func NewRevisionNotFoundError(asked module.RevisionID, cause error) *ResolutionError {
	return &ResolutionError{Code: RevisionNotFound, Module: asked, Cause: cause}
}

func NewDescriptorFetchFailedError(asked module.RevisionID, cause error) *ResolutionError {
	return &ResolutionError{Code: DescriptorFetchFailed, Module: asked, Cause: cause}
}

func NewArtifactFetchFailedError(artifact module.RevisionID, cause error) *ResolutionError {
	return &ResolutionError{Code: ArtifactFetchFailed, Module: artifact, Cause: cause}
}

func NewUnsupportedOperationError(cause error) *ResolutionError {
	return &ResolutionError{Code: UnsupportedOperation, Cause: cause}
}

func NewRepositoryUnreachableError(asked module.RevisionID, cause error) *ResolutionError {
	return &ResolutionError{Code: RepositoryUnreachable, Module: asked, Cause: cause}
}

func NewUnknownError(cause error) *ResolutionError {
	return &ResolutionError{Code: UnknownError, Cause: cause}
}

func Standardize(err error) *ResolutionError {
	if err == nil {
		return nil
	}

	var resErr *ResolutionError
	if errors.As(err, &resErr) {
		return resErr
	}

	return NewUnknownError(err)
}

// HasCode reports whether err is, or wraps, a ResolutionError with the given code
func HasCode(err error, code string) bool {
	var resErr *ResolutionError
	return errors.As(err, &resErr) && resErr.Code == code
}
