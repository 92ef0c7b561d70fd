package scenario

import (
	"reflect"
	"slices"
)

// Type is the value of the scenarioType discriminator.
type Type string

const (
	TypeContractCall                     Type = "ContractCall"
	TypeRoundRobinMoneyTransfer          Type = "RoundRobinMoneyTransfer"
	TypeSelfTransactionWithPayload       Type = "SelfTransactionWithPayload"
	TypeSelfTransactionWithRandomPayload Type = "SelfTransactionWithRandomPayload"
	TypeUnderPricedTransaction           Type = "UnderPricedTransaction"
)

// DiscriminatorField is the JSON key carrying the scenario type.
const DiscriminatorField = "scenarioType"

var types = []Type{
	TypeContractCall,
	TypeRoundRobinMoneyTransfer,
	TypeSelfTransactionWithPayload,
	TypeSelfTransactionWithRandomPayload,
	TypeUnderPricedTransaction,
}

// Types returns every known scenario type in declaration order.
func Types() []Type {
	return slices.Clone(types)
}

// Valid reports whether t names one of the known scenario variants.
func (t Type) Valid() bool {
	_, ok := registry[t]
	return ok
}

func (t Type) String() string {
	return string(t)
}

// Scenario is one load-test action template. The set of implementations is
// closed: only the variants declared in this package satisfy it.
type Scenario interface {
	ScenarioType() Type
	scenario()
}

// variant describes how one scenario type is built, checked and decoded.
type variant struct {
	zero     func() Scenario
	required []string
	fields   []string
	decode   func(doc []byte) (Scenario, error)
}

var registry = map[Type]variant{
	TypeContractCall: {
		zero:     func() Scenario { return ContractCall{} },
		required: []string{"wallet", "contractAddress", "methodName", "nbCalls"},
		fields:   []string{DiscriminatorField, "wallet", "contractAddress", "methodName", "parameters", "nbCalls"},
		decode:   decodeAs[ContractCall],
	},
	TypeRoundRobinMoneyTransfer: {
		zero:     func() Scenario { return RoundRobinMoneyTransfer{} },
		required: []string{"nbTransfers", "nbWallets"},
		fields:   []string{DiscriminatorField, "nbTransfers", "nbWallets"},
		decode:   decodeAs[RoundRobinMoneyTransfer],
	},
	TypeSelfTransactionWithPayload: {
		zero:     func() Scenario { return SelfTransactionWithPayload{} },
		required: []string{"wallet", "nbTransfers", "payload"},
		fields:   []string{DiscriminatorField, "wallet", "nbTransfers", "payload"},
		decode:   decodeAs[SelfTransactionWithPayload],
	},
	TypeSelfTransactionWithRandomPayload: {
		zero:     func() Scenario { return SelfTransactionWithRandomPayload{} },
		required: []string{"wallet", "nbTransfers", "payloadSize"},
		fields:   []string{DiscriminatorField, "wallet", "nbTransfers", "payloadSize"},
		decode:   decodeAs[SelfTransactionWithRandomPayload],
	},
	TypeUnderPricedTransaction: {
		zero:     func() Scenario { return UnderPricedTransaction{} },
		required: []string{"wallet", "nbTransfers"},
		fields:   []string{DiscriminatorField, "wallet", "nbTransfers"},
		decode:   decodeAs[UnderPricedTransaction],
	},
}

// New returns the default instance of the variant named by t.
func New(t Type) (Scenario, error) {
	v, ok := registry[t]
	if !ok {
		return nil, unknownDiscriminator(string(t))
	}
	return v.zero(), nil
}

// Fields returns the JSON keys known for t, discriminator included.
func Fields(t Type) []string {
	return slices.Clone(registry[t].fields)
}

// RequiredFields returns the JSON keys a document of type t must carry
// besides the discriminator.
func RequiredFields(t Type) []string {
	return slices.Clone(registry[t].required)
}

// Equal reports whether a and b are the same variant with the same fields.
func Equal(a, b Scenario) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.ScenarioType() != b.ScenarioType() {
		return false
	}
	if x, ok := a.(ContractCall); ok {
		y, ok := b.(ContractCall)
		return ok && x.equal(y)
	}
	return reflect.DeepEqual(a, b)
}
