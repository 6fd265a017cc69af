package auth

import (
	apperrors "github.com/samadhi-app/record-service/pkg/util/errorutil"
)

// AuthorizeOwner permits access only when the caller owns the resource.
// Every read or update of a per-user resource routes through this check
// before data leaves the service.
func AuthorizeOwner(callerID, ownerID string) error {
	if callerID == "" || callerID != ownerID {
		return apperrors.NewForbidden("access denied")
	}
	return nil
}
