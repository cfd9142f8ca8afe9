package model

import (
	"strings"
	"unicode/utf8"

	"github.com/secmon-lab/hara/pkg/domain/model/config"
)

// RejectReason tells why an item name was considered weak
type RejectReason string

const (
	RejectNone     RejectReason = ""
	RejectEmpty    RejectReason = "empty"
	RejectSentinel RejectReason = "sentinel"
	RejectTooShort RejectReason = "too_short"
	RejectGeneric  RejectReason = "generic_title"
)

// NameVerdict is the outcome of CheckName
type NameVerdict struct {
	Reason RejectReason
}

// Accepted returns true if the name passed every rule
func (v NameVerdict) Accepted() bool {
	return v.Reason == RejectNone
}

// NameRule inspects a trimmed name and returns a reason when it rejects it
type NameRule func(name string, cfg config.ExtractorConfig) RejectReason

// NameRules is the ordered validation pipeline applied by CheckName
var NameRules = []NameRule{
	RuleNotEmpty,
	RuleNotSentinel,
	RuleMinLength,
	RuleNotGeneric,
}

func RuleNotEmpty(name string, _ config.ExtractorConfig) RejectReason {
	if name == "" {
		return RejectEmpty
	}
	return RejectNone
}

func RuleNotSentinel(name string, _ config.ExtractorConfig) RejectReason {
	if name == config.UnknownItemID {
		return RejectSentinel
	}
	return RejectNone
}

func RuleMinLength(name string, cfg config.ExtractorConfig) RejectReason {
	if utf8.RuneCountInString(name) < cfg.MinNameLength {
		return RejectTooShort
	}
	return RejectNone
}

func RuleNotGeneric(name string, cfg config.ExtractorConfig) RejectReason {
	if cfg.IsGeneric(name) {
		return RejectGeneric
	}
	return RejectNone
}

// CheckName runs NameRules in order and stops at the first rejection
func CheckName(name string, cfg config.ExtractorConfig) NameVerdict {
	t := strings.TrimSpace(name)
	for _, rule := range NameRules {
		if reason := rule(t, cfg); reason != RejectNone {
			return NameVerdict{Reason: reason}
		}
	}
	return NameVerdict{}
}

// IsWeakName is a shorthand for !CheckName(name, cfg).Accepted()
func IsWeakName(name string, cfg config.ExtractorConfig) bool {
	return !CheckName(name, cfg).Accepted()
}
