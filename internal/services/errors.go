package services

import "errors"

var ErrHistoryDisabled = errors.New("transformation history is not configured: set DATABASE_URL")
