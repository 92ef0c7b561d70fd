package scenario

import (
	"fmt"
	"slices"

	json "github.com/goccy/go-json"
)

// Parameter is one argument of a contract method call.
type Parameter struct {
	Type  string `json:"type" validate:"required"`
	Value string `json:"value" validate:"required"`
}

// ContractCall invokes a method of an already deployed contract.
type ContractCall struct {
	Wallet          string      `json:"wallet" validate:"required"`
	ContractAddress string      `json:"contractAddress" validate:"required,eth_addr"`
	MethodName      string      `json:"methodName" validate:"required"`
	Parameters      []Parameter `json:"parameters,omitempty" validate:"dive"`
	NbCalls         int         `json:"nbCalls" validate:"min=1"`
}

func (ContractCall) ScenarioType() Type { return TypeContractCall }
func (ContractCall) scenario()          {}

func (s ContractCall) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ScenarioType    Type        `json:"scenarioType"`
		Wallet          string      `json:"wallet"`
		ContractAddress string      `json:"contractAddress"`
		MethodName      string      `json:"methodName"`
		Parameters      []Parameter `json:"parameters,omitempty"`
		NbCalls         int         `json:"nbCalls"`
	}{TypeContractCall, s.Wallet, s.ContractAddress, s.MethodName, s.Parameters, s.NbCalls})
}

func (s ContractCall) String() string {
	return fmt.Sprintf("ContractCall{wallet: %s, contractAddress: %s, methodName: %s, parameters: %v, nbCalls: %d}",
		s.Wallet, s.ContractAddress, s.MethodName, s.Parameters, s.NbCalls)
}

// equal treats nil and empty parameter lists alike, since omitempty drops both.
func (s ContractCall) equal(o ContractCall) bool {
	return s.Wallet == o.Wallet &&
		s.ContractAddress == o.ContractAddress &&
		s.MethodName == o.MethodName &&
		s.NbCalls == o.NbCalls &&
		slices.Equal(s.Parameters, o.Parameters)
}

// RoundRobinMoneyTransfer moves value between a ring of fresh wallets.
type RoundRobinMoneyTransfer struct {
	NbTransfers int `json:"nbTransfers" validate:"min=1"`
	NbWallets   int `json:"nbWallets" validate:"min=1"`
}

func (RoundRobinMoneyTransfer) ScenarioType() Type { return TypeRoundRobinMoneyTransfer }
func (RoundRobinMoneyTransfer) scenario()          {}

func (s RoundRobinMoneyTransfer) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ScenarioType Type `json:"scenarioType"`
		NbTransfers  int  `json:"nbTransfers"`
		NbWallets    int  `json:"nbWallets"`
	}{TypeRoundRobinMoneyTransfer, s.NbTransfers, s.NbWallets})
}

func (s RoundRobinMoneyTransfer) String() string {
	return fmt.Sprintf("RoundRobinMoneyTransfer{nbTransfers: %d, nbWallets: %d}", s.NbTransfers, s.NbWallets)
}

// SelfTransactionWithPayload sends a wallet's transactions back to itself
// carrying a fixed calldata payload.
type SelfTransactionWithPayload struct {
	Wallet      string `json:"wallet" validate:"required"`
	NbTransfers int    `json:"nbTransfers" validate:"min=1"`
	Payload     string `json:"payload" validate:"required,startswith=0x,hexadecimal"`
}

func (SelfTransactionWithPayload) ScenarioType() Type { return TypeSelfTransactionWithPayload }
func (SelfTransactionWithPayload) scenario()          {}

func (s SelfTransactionWithPayload) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ScenarioType Type   `json:"scenarioType"`
		Wallet       string `json:"wallet"`
		NbTransfers  int    `json:"nbTransfers"`
		Payload      string `json:"payload"`
	}{TypeSelfTransactionWithPayload, s.Wallet, s.NbTransfers, s.Payload})
}

func (s SelfTransactionWithPayload) String() string {
	return fmt.Sprintf("SelfTransactionWithPayload{wallet: %s, nbTransfers: %d, payload: %s}",
		s.Wallet, s.NbTransfers, s.Payload)
}

// SelfTransactionWithRandomPayload is SelfTransactionWithPayload with a
// random payload of PayloadSize bytes generated per transaction.
type SelfTransactionWithRandomPayload struct {
	Wallet      string `json:"wallet" validate:"required"`
	NbTransfers int    `json:"nbTransfers" validate:"min=1"`
	PayloadSize int    `json:"payloadSize" validate:"min=1"`
}

func (SelfTransactionWithRandomPayload) ScenarioType() Type {
	return TypeSelfTransactionWithRandomPayload
}
func (SelfTransactionWithRandomPayload) scenario() {}

func (s SelfTransactionWithRandomPayload) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ScenarioType Type   `json:"scenarioType"`
		Wallet       string `json:"wallet"`
		NbTransfers  int    `json:"nbTransfers"`
		PayloadSize  int    `json:"payloadSize"`
	}{TypeSelfTransactionWithRandomPayload, s.Wallet, s.NbTransfers, s.PayloadSize})
}

func (s SelfTransactionWithRandomPayload) String() string {
	return fmt.Sprintf("SelfTransactionWithRandomPayload{wallet: %s, nbTransfers: %d, payloadSize: %d}",
		s.Wallet, s.NbTransfers, s.PayloadSize)
}

// UnderPricedTransaction submits transactions priced below what the node
// accepts for inclusion.
type UnderPricedTransaction struct {
	Wallet      string `json:"wallet" validate:"required"`
	NbTransfers int    `json:"nbTransfers" validate:"min=1"`
}

func (UnderPricedTransaction) ScenarioType() Type { return TypeUnderPricedTransaction }
func (UnderPricedTransaction) scenario()          {}

func (s UnderPricedTransaction) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ScenarioType Type   `json:"scenarioType"`
		Wallet       string `json:"wallet"`
		NbTransfers  int    `json:"nbTransfers"`
	}{TypeUnderPricedTransaction, s.Wallet, s.NbTransfers})
}

func (s UnderPricedTransaction) String() string {
	return fmt.Sprintf("UnderPricedTransaction{wallet: %s, nbTransfers: %d}", s.Wallet, s.NbTransfers)
}
