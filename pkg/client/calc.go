package client

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/bytecalc/gobytecalc/pkg/proto"
)

type Calc struct {
	options Options
}

func NewCalc(options Options) *Calc {
	return &Calc{
		options: options,
	}
}

type EvaluateResult struct {
	Result int64 `json:"result"`
}

// Evaluate runs a single instruction on the host, outside the runtime.
func (a *Calc) Evaluate(ctx context.Context, i proto.Instruction) (*EvaluateResult, *Response, error) {
	url, err := joinUrl(a.options.BaseUrl, "/calc/evaluate")
	if err != nil {
		return nil, nil, err
	}
	bts, err := json.Marshal(i)
	if err != nil {
		return nil, nil, err
	}
	req, err := http.NewRequest("POST", url.String(), bytes.NewReader(bts))
	if err != nil {
		return nil, nil, err
	}

	out := new(EvaluateResult)
	response, err := doHTTP(ctx, a.options, req, out)
	if err != nil {
		return nil, response, err
	}
	return out, response, nil
}

type invokeRequest struct {
	Program  string   `json:"program,omitempty"`
	Payload  []byte   `json:"payload"`
	Accounts []string `json:"accounts,omitempty"`
}

type InvokeResult struct {
	Success bool     `json:"success"`
	Result  int64    `json:"result"`
	Logs    []string `json:"logs"`
}

// Invoke routes a raw instruction payload through the program the host
// serves by default.
func (a *Calc) Invoke(ctx context.Context, payload []byte, accounts []proto.Address) (*InvokeResult, *Response, error) {
	return a.invoke(ctx, "", payload, accounts)
}

// InvokeAt routes a raw instruction payload through the program registered
// at the given address.
func (a *Calc) InvokeAt(ctx context.Context, program proto.Address, payload []byte, accounts []proto.Address) (*InvokeResult, *Response, error) {
	return a.invoke(ctx, program.String(), payload, accounts)
}

func (a *Calc) invoke(ctx context.Context, program string, payload []byte, accounts []proto.Address) (*InvokeResult, *Response, error) {
	url, err := joinUrl(a.options.BaseUrl, "/calc/invoke")
	if err != nil {
		return nil, nil, err
	}
	addrs := make([]string, 0, len(accounts))
	for _, account := range accounts {
		addrs = append(addrs, account.String())
	}
	bts, err := json.Marshal(invokeRequest{Program: program, Payload: payload, Accounts: addrs})
	if err != nil {
		return nil, nil, err
	}
	req, err := http.NewRequest("POST", url.String(), bytes.NewReader(bts))
	if err != nil {
		return nil, nil, err
	}

	out := new(InvokeResult)
	response, err := doHTTP(ctx, a.options, req, out)
	if err != nil {
		return nil, response, err
	}
	return out, response, nil
}

// Encode renders an instruction as the raw payload bytes the program
// accepts.
func (a *Calc) Encode(ctx context.Context, i proto.Instruction) ([]byte, *Response, error) {
	url, err := joinUrl(a.options.BaseUrl, "/calc/encode")
	if err != nil {
		return nil, nil, err
	}
	bts, err := json.Marshal(i)
	if err != nil {
		return nil, nil, err
	}
	req, err := http.NewRequest("POST", url.String(), bytes.NewReader(bts))
	if err != nil {
		return nil, nil, err
	}

	out := new(bytes.Buffer)
	response, err := doHTTP(ctx, a.options, req, out)
	if err != nil {
		return nil, response, err
	}
	return out.Bytes(), response, nil
}

type OperationInfo struct {
	Selector byte   `json:"selector"`
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
}

// Operations returns the dispatch table of the host's calculator.
func (a *Calc) Operations(ctx context.Context) ([]OperationInfo, *Response, error) {
	url, err := joinUrl(a.options.BaseUrl, "/calc/operations")
	if err != nil {
		return nil, nil, err
	}
	req, err := http.NewRequest("GET", url.String(), nil)
	if err != nil {
		return nil, nil, err
	}

	out := []OperationInfo{}
	response, err := doHTTP(ctx, a.options, req, &out)
	if err != nil {
		return nil, response, err
	}
	return out, response, nil
}
