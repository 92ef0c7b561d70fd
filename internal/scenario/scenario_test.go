package scenario

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

func representatives() []Scenario {
	return []Scenario{
		ContractCall{
			Wallet:          "source",
			ContractAddress: "0x5fbdb2315678afecb367f032d93f642f64180aa3",
			MethodName:      "mint",
			Parameters:      []Parameter{{Type: "uint256", Value: "10"}},
			NbCalls:         4,
		},
		RoundRobinMoneyTransfer{NbTransfers: 3, NbWallets: 2},
		SelfTransactionWithPayload{Wallet: "new", NbTransfers: 7, Payload: "0xdeadbeef"},
		SelfTransactionWithRandomPayload{Wallet: "new", NbTransfers: 5, PayloadSize: 128},
		UnderPricedTransaction{Wallet: "source", NbTransfers: 1},
	}
}

func TestEveryTypeIsRegistered(t *testing.T) {
	seen := map[Type]bool{}
	for _, s := range representatives() {
		seen[s.ScenarioType()] = true
	}
	for _, typ := range Types() {
		require.True(t, typ.Valid(), typ)
		require.True(t, seen[typ], "no representative for %s", typ)
		require.Contains(t, Fields(typ), DiscriminatorField)
	}
	require.Len(t, registry, len(Types()))
}

func TestNewSetsTag(t *testing.T) {
	for _, typ := range Types() {
		s, err := New(typ)
		require.NoError(t, err)
		require.Equal(t, typ, s.ScenarioType())
	}

	s, err := New(TypeContractCall)
	require.NoError(t, err)
	require.Equal(t, "ContractCall", string(s.ScenarioType()))

	_, err = New("Bogus")
	require.ErrorIs(t, err, ErrUnknownDiscriminator)
}

func TestValidateKnownTypes(t *testing.T) {
	docs := map[Type]string{
		TypeContractCall: `{"scenarioType":"ContractCall","wallet":"source",
			"contractAddress":"0x5fbdb2315678afecb367f032d93f642f64180aa3","methodName":"mint","nbCalls":1}`,
		TypeRoundRobinMoneyTransfer:          `{"scenarioType":"RoundRobinMoneyTransfer","nbTransfers":1,"nbWallets":2}`,
		TypeSelfTransactionWithPayload:       `{"scenarioType":"SelfTransactionWithPayload","wallet":"new","nbTransfers":1,"payload":"0x00ff"}`,
		TypeSelfTransactionWithRandomPayload: `{"scenarioType":"SelfTransactionWithRandomPayload","wallet":"new","nbTransfers":1,"payloadSize":32}`,
		TypeUnderPricedTransaction:           `{"scenarioType":"UnderPricedTransaction","wallet":"source","nbTransfers":2}`,
	}
	for typ, doc := range docs {
		t.Run(string(typ), func(t *testing.T) {
			require.NoError(t, Validate([]byte(doc)))
		})
	}
}

func TestValidateFailures(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
		code string
	}{
		{"nil document", "", ErrMissingRequiredField, CodeMissingRequiredField},
		{"null document", "null", ErrMissingRequiredField, CodeMissingRequiredField},
		{"empty object", "{}", ErrMissingRequiredField, CodeMissingRequiredField},
		{"null discriminator", `{"scenarioType":null}`, ErrMissingRequiredField, CodeMissingRequiredField},
		{"not json", `{"scenarioType":`, ErrMalformedDocument, CodeMalformedDocument},
		{"array", `[{"scenarioType":"ContractCall"}]`, ErrMalformedDocument, CodeMalformedDocument},
		{"numeric discriminator", `{"scenarioType":3}`, ErrMalformedDocument, CodeMalformedDocument},
		{"unknown discriminator", `{"scenarioType":"Bogus"}`, ErrUnknownDiscriminator, CodeUnknownScenarioType},
		{"case sensitive", `{"scenarioType":"contractcall"}`, ErrUnknownDiscriminator, CodeUnknownScenarioType},
		{"missing variant field", `{"scenarioType":"RoundRobinMoneyTransfer","nbTransfers":1}`, ErrMissingRequiredField, CodeMissingRequiredField},
		{"wrong field type", `{"scenarioType":"RoundRobinMoneyTransfer","nbTransfers":"one","nbWallets":1}`, ErrMalformedDocument, CodeMalformedDocument},
		{"zero transfers", `{"scenarioType":"UnderPricedTransaction","wallet":"w","nbTransfers":0}`, ErrInvalidField, CodeInvalidField},
		{"payload not hex", `{"scenarioType":"SelfTransactionWithPayload","wallet":"w","nbTransfers":1,"payload":"hello"}`, ErrInvalidField, CodeInvalidField},
		{"bad address", `{"scenarioType":"ContractCall","wallet":"w","contractAddress":"0x12","methodName":"m","nbCalls":1}`, ErrInvalidField, CodeInvalidField},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate([]byte(tt.doc))
			require.Error(t, err)
			require.True(t, errors.Is(err, tt.want), "got %v", err)
			require.Equal(t, tt.code, ErrorCode(err))
		})
	}
}

func TestValidateNilSlice(t *testing.T) {
	require.ErrorIs(t, Validate(nil), ErrMissingRequiredField)
}

func TestUnknownDiscriminatorNamesValue(t *testing.T) {
	err := Validate([]byte(`{"scenarioType":"Bogus"}`))
	require.ErrorIs(t, err, ErrUnknownDiscriminator)
	require.Contains(t, err.Error(), "Bogus")
}

func TestMissingFieldsAreNamed(t *testing.T) {
	err := Validate([]byte(`{"scenarioType":"SelfTransactionWithRandomPayload","wallet":"new"}`))
	require.ErrorIs(t, err, ErrMissingRequiredField)
	require.Contains(t, err.Error(), "nbTransfers")
	require.Contains(t, err.Error(), "payloadSize")
}

func TestInvalidFieldUsesJSONName(t *testing.T) {
	err := Validate([]byte(`{"scenarioType":"RoundRobinMoneyTransfer","nbTransfers":1,"nbWallets":0}`))
	require.ErrorIs(t, err, ErrInvalidField)
	require.Contains(t, err.Error(), "nbWallets")
}

func TestRoundTrip(t *testing.T) {
	for _, s := range representatives() {
		t.Run(string(s.ScenarioType()), func(t *testing.T) {
			doc, err := ToJSON(s)
			require.NoError(t, err)
			require.NoError(t, Validate(doc))

			got, err := FromJSON(doc)
			require.NoError(t, err)
			require.IsType(t, s, got)
			require.True(t, Equal(s, got), "%s != %s", s, got)
		})
	}
}

func TestToJSONWritesDiscriminatorFirst(t *testing.T) {
	doc, err := ToJSON(RoundRobinMoneyTransfer{NbTransfers: 3, NbWallets: 2})
	require.NoError(t, err)
	require.JSONEq(t, `{"scenarioType":"RoundRobinMoneyTransfer","nbTransfers":3,"nbWallets":2}`, string(doc))
	require.Regexp(t, `^\{"scenarioType":"RoundRobinMoneyTransfer"`, string(doc))

	_, err = ToJSON(nil)
	require.ErrorIs(t, err, ErrMissingRequiredField)
}

func TestFromJSONIgnoresUnknownFields(t *testing.T) {
	s, err := FromJSON([]byte(`{"scenarioType":"UnderPricedTransaction","wallet":"w","nbTransfers":2,"gasPrice":"1"}`))
	require.NoError(t, err)
	require.Equal(t, UnderPricedTransaction{Wallet: "w", NbTransfers: 2}, s)
}

func TestEqual(t *testing.T) {
	a, _ := New(TypeUnderPricedTransaction)
	b, _ := New(TypeUnderPricedTransaction)
	c, _ := New(TypeRoundRobinMoneyTransfer)
	require.True(t, Equal(a, b))
	require.False(t, Equal(a, c))
	require.False(t, Equal(a, nil))
	require.True(t, Equal(nil, nil))

	withNil := ContractCall{Wallet: "w", NbCalls: 1}
	withEmpty := ContractCall{Wallet: "w", NbCalls: 1, Parameters: []Parameter{}}
	require.True(t, Equal(withNil, withEmpty))
	require.False(t, Equal(withNil, ContractCall{Wallet: "w", NbCalls: 2}))
}

func TestString(t *testing.T) {
	require.Equal(t, "RoundRobinMoneyTransfer{nbTransfers: 3, nbWallets: 2}",
		RoundRobinMoneyTransfer{NbTransfers: 3, NbWallets: 2}.String())
}

func TestRequiredFieldsAreCopies(t *testing.T) {
	fields := RequiredFields(TypeUnderPricedTransaction)
	fields[0] = "mutated"
	require.Equal(t, []string{"wallet", "nbTransfers"}, RequiredFields(TypeUnderPricedTransaction))
}

func TestLookAlikeKeysAreDropped(t *testing.T) {
	s, err := FromJSON([]byte(`{"scenarioType":"UnderPricedTransaction","wallet":"w","nbTransfers":1,"NBTRANSFERS":5}`))
	require.NoError(t, err)
	require.Equal(t, UnderPricedTransaction{Wallet: "w", NbTransfers: 1}, s)

	s, err = FromJSON([]byte(`{"scenarioType":"UnderPricedTransaction","NBTRANSFERS":5,"wallet":"w","nbTransfers":2}`))
	require.NoError(t, err)
	require.Equal(t, UnderPricedTransaction{Wallet: "w", NbTransfers: 2}, s)
}

func TestKeysAreCaseSensitive(t *testing.T) {
	err := Validate([]byte(`{"scenarioType":"UnderPricedTransaction","Wallet":"w","nbTransfers":1}`))
	require.ErrorIs(t, err, ErrMissingRequiredField)
	require.Contains(t, err.Error(), "wallet")
}

func TestDuplicateKeysFirstWins(t *testing.T) {
	s, err := FromJSON([]byte(`{"scenarioType":"RoundRobinMoneyTransfer","nbTransfers":3,"nbWallets":2,"nbTransfers":9}`))
	require.NoError(t, err)
	require.Equal(t, RoundRobinMoneyTransfer{NbTransfers: 3, NbWallets: 2}, s)
}
