package models

import (
	"encoding/base64"
	"encoding/json"

	"github.com/user/near-sql-indexer/internal/nearview"
)

// actionPayload is the tagged variant every action's arguments are
// flattened into before being rendered to a JSON string for storage —
// the "Action payload union" design note in spec.md §9, grounded in
// original_source/src/models/mod.rs's
// extract_action_type_and_value_from_action_view.
type actionPayload struct {
	MethodName  string `json:"method_name,omitempty"`
	Args        string `json:"args,omitempty"` // base64-encoded raw FunctionCall args
	Gas         uint64 `json:"gas,omitempty"`
	Deposit     string `json:"deposit,omitempty"`
	StakeAmount string `json:"stake,omitempty"`
	PublicKey   string `json:"public_key,omitempty"`
	AccessKey   *accessKeyPayload `json:"access_key,omitempty"`
	BeneficiaryID string `json:"beneficiary_id,omitempty"`
	CodeSHA256  string `json:"code_sha256,omitempty"`
}

type accessKeyPayload struct {
	Nonce       uint64   `json:"nonce"`
	Permission  string   `json:"permission"`
	Allowance   string   `json:"allowance,omitempty"`
	ReceiverID  string   `json:"receiver_id,omitempty"`
	MethodNames []string `json:"method_names,omitempty"`
}

// ActionKindAndArgs projects one action view to its closed action-kind
// label and a JSON-serialized payload string, the pair stored in
// action_receipt_actions.
func ActionKindAndArgs(a nearview.ActionView) (kind string, argsJSON string) {
	switch a.Kind {
	case nearview.ActionKindCreateAccount:
		kind = ActionKindCreateAccount
		return kind, marshalPayload(actionPayload{})
	case nearview.ActionKindDeployContract:
		kind = ActionKindDeployContract
		return kind, marshalPayload(actionPayload{CodeSHA256: a.CodeSHA256})
	case nearview.ActionKindFunctionCall:
		kind = ActionKindFunctionCall
		return kind, marshalPayload(actionPayload{
			MethodName: a.MethodName,
			Args:       base64.StdEncoding.EncodeToString(a.Args),
			Gas:        a.Gas,
			Deposit:    amountString(a.Deposit),
		})
	case nearview.ActionKindTransfer:
		kind = ActionKindTransfer
		return kind, marshalPayload(actionPayload{Deposit: amountString(a.TransferDeposit)})
	case nearview.ActionKindStake:
		kind = ActionKindStake
		return kind, marshalPayload(actionPayload{
			StakeAmount: amountString(a.StakeAmount),
			PublicKey:   a.StakePublicKey,
		})
	case nearview.ActionKindAddKey:
		kind = ActionKindAddKey
		return kind, marshalPayload(actionPayload{
			PublicKey: a.PublicKey,
			AccessKey: accessKeyToPayload(a.AccessKey),
		})
	case nearview.ActionKindDeleteKey:
		kind = ActionKindDeleteKey
		return kind, marshalPayload(actionPayload{PublicKey: a.DeleteKeyPublicKey})
	case nearview.ActionKindDeleteAccount:
		kind = ActionKindDeleteAccount
		return kind, marshalPayload(actionPayload{BeneficiaryID: a.BeneficiaryID})
	default:
		return "", "{}"
	}
}

func accessKeyToPayload(ak nearview.AccessKeyView) *accessKeyPayload {
	p := &accessKeyPayload{Nonce: ak.Nonce}
	if ak.Permission == nearview.AccessKeyPermissionFullAccess {
		p.Permission = AccessKeyPermissionFullAccess
		return p
	}
	p.Permission = AccessKeyPermissionFunctionCall
	p.Allowance = amountString(ak.Allowance)
	p.ReceiverID = ak.ReceiverID
	p.MethodNames = ak.MethodNames
	return p
}

func marshalPayload(p actionPayload) string {
	b, err := json.Marshal(p)
	if err != nil {
		// Every field is a plain string/number/slice; Marshal cannot fail.
		return "{}"
	}
	return string(b)
}
