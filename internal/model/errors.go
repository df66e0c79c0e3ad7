package model

import "errors"

var ErrNoRecord = errors.New("no record")
var ErrInvalidRule = errors.New("invalid recurrence rule")
var ErrStore = errors.New("task store failure")
