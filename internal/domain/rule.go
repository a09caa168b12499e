package domain

import "encoding/json"

// ConditionType encodes the kind of a quantity-range condition as used by the
// remote engine's payload.
type ConditionType int

const (
	// ConditionNotMore is an upper bound on quantity.
	ConditionNotMore ConditionType = 1
	// ConditionNotLess is a lower bound on quantity.
	ConditionNotLess ConditionType = 6
)

// Rule priority tiers recognized by the matcher. PriorityBounded rules must
// declare both a lower and an upper bound; PriorityOpenEnded rules declare a
// lower bound only.
const (
	PriorityOpenEnded = 50
	PriorityBounded   = 55
)

// RangeCondition is a single quantity restriction. The remote engine ships
// the value as a JSON string; it is parsed lazily by the matcher so one
// malformed condition never aborts a scan.
type RangeCondition struct {
	Type  ConditionType `json:"type"`
	Value string        `json:"value"`
}

// Restriction wraps the condition list of one scale result.
type Restriction struct {
	Conditions []RangeCondition `json:"conditions"`
}

// ScaleResult is one result entry of a scale item. Restriction is optional in
// the payload.
type ScaleResult struct {
	Restriction *Restriction `json:"restriction"`
}

// ScaleItem is one entry of a rule's result scale.
type ScaleItem struct {
	Results []ScaleResult `json:"results"`
}

// CatalogRule is a remotely stored, named, prioritized discount rule. The
// nested resultScaleItems shape mirrors the remote payload; every level is
// optional and the matcher navigates it defensively.
type CatalogRule struct {
	ID               json.Number `json:"id"`
	Name             string      `json:"name"`
	Priority         int         `json:"priority"`
	ResultScaleItems []ScaleItem `json:"resultScaleItems"`
}
