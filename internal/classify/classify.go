// Package classify assigns module and priority tags to tests using
// ordered substring rule tables.
package classify

import (
	"strings"

	"pta/internal/domain"
)

// ModuleRule maps a path substring to a module tag.
// A rule is skipped when any of its Excludes substrings is present.
type ModuleRule struct {
	Module   domain.Module
	Contains string
	Excludes []string
}

// ModuleRules is checked top to bottom; the first matching rule wins.
var ModuleRules = []ModuleRule{
	{Module: domain.ModulePersistence, Contains: "persistence"},
	{Module: domain.ModuleExchange, Contains: "exchange", Excludes: []string{"online"}},
	{Module: domain.ModuleStrategy, Contains: "strategy"},
	{Module: domain.ModuleFreqtradebot, Contains: "freqtradebot"},
	{Module: domain.ModuleOptimize, Contains: "optimize"},
	{Module: domain.ModuleLeverage, Contains: "leverage"},
	{Module: domain.ModuleData, Contains: "data"},
	{Module: domain.ModuleRPC, Contains: "rpc"},
	{Module: domain.ModuleFreqAI, Contains: "freqai"},
	{Module: domain.ModuleUtil, Contains: "util"},
}

// FallbackModule is returned when no rule matches
const FallbackModule = domain.ModuleCore

// PriorityRule assigns a priority when the path contains any of PathContains
// or the lowercased test name contains any of NameContains.
type PriorityRule struct {
	Priority     domain.Priority
	PathContains []string
	NameContains []string
}

// PriorityRules is checked top to bottom; the first matching rule wins.
var PriorityRules = []PriorityRule{
	{Priority: domain.PriorityP0, PathContains: []string{"persistence"}, NameContains: []string{"trade"}},
	{Priority: domain.PriorityP1, PathContains: []string{"exchange", "strategy"}},
}

// FallbackPriority is returned when no priority rule matches
const FallbackPriority = domain.PriorityP2

// ModuleOrder is the listing order of modules
var ModuleOrder = []domain.Module{
	domain.ModulePersistence,
	domain.ModuleExchange,
	domain.ModuleStrategy,
	domain.ModuleFreqtradebot,
	domain.ModuleOptimize,
	domain.ModuleLeverage,
	domain.ModuleData,
	domain.ModuleRPC,
	domain.ModuleFreqAI,
	domain.ModuleUtil,
	domain.ModuleCore,
}

// PriorityOrder is the listing order of priorities
var PriorityOrder = []domain.Priority{
	domain.PriorityP0,
	domain.PriorityP1,
	domain.PriorityP2,
}

// Unranked is the rank given to values missing from an order list.
// It sorts after every known value.
const Unranked = 99

// Module returns the module tag for a test file path
func Module(path string) domain.Module {
	for _, rule := range ModuleRules {
		if rule.matches(path) {
			return rule.Module
		}
	}
	return FallbackModule
}

func (r ModuleRule) matches(path string) bool {
	if !strings.Contains(path, r.Contains) {
		return false
	}
	for _, ex := range r.Excludes {
		if strings.Contains(path, ex) {
			return false
		}
	}
	return true
}

// Priority returns the priority tag for a test function.
// Path and name are both considered; module classification plays no part.
func Priority(path, name string) domain.Priority {
	lowered := strings.ToLower(name)
	for _, rule := range PriorityRules {
		if containsAny(path, rule.PathContains) || containsAny(lowered, rule.NameContains) {
			return rule.Priority
		}
	}
	return FallbackPriority
}

// ModuleRank returns the position of m in ModuleOrder, or Unranked
func ModuleRank(m domain.Module) int {
	for i, known := range ModuleOrder {
		if known == m {
			return i
		}
	}
	return Unranked
}

// PriorityRank returns the position of p in PriorityOrder, or Unranked
func PriorityRank(p domain.Priority) int {
	for i, known := range PriorityOrder {
		if known == p {
			return i
		}
	}
	return Unranked
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
