package api

import (
	"context"

	"github.com/pkg/errors"

	apiErrs "github.com/bytecalc/gobytecalc/pkg/api/errors"
	"github.com/bytecalc/gobytecalc/pkg/calc"
	"github.com/bytecalc/gobytecalc/pkg/proto"
	"github.com/bytecalc/gobytecalc/pkg/runtime"
)

// App implements the operations behind the HTTP API: direct evaluation,
// invocation through the hosting runtime and host introspection.
type App struct {
	rt      *runtime.Runtime
	program proto.Address
	version string
}

func NewApp(rt *runtime.Runtime, program proto.Address, version string) (*App, error) {
	if rt == nil {
		return nil, errors.New("runtime must not be nil")
	}
	return &App{rt: rt, program: program, version: version}, nil
}

// Program returns the address invocations are routed to when the request
// names no program of its own.
func (a *App) Program() proto.Address {
	return a.program
}

type EvaluateResult struct {
	Result int64 `json:"result"`
}

// Evaluate runs a single instruction outside the runtime, without touching
// invocation counters or collecting a trace.
func (a *App) Evaluate(i proto.Instruction) (EvaluateResult, error) {
	r, err := calc.Evaluate(i)
	if err != nil {
		return EvaluateResult{}, evaluationApiErr(err, nil)
	}
	return EvaluateResult{Result: r}, nil
}

type InvokeResult struct {
	Success bool     `json:"success"`
	Result  int64    `json:"result"`
	Logs    []string `json:"logs"`
}

// Invoke routes a raw payload through the runtime and reads the result back
// from the invocation return data. Evaluation failures keep the trace
// collected up to the failing step.
func (a *App) Invoke(ctx context.Context, program proto.Address, accounts []proto.Address, payload []byte) (InvokeResult, error) {
	res, err := a.rt.Invoke(ctx, program, accounts, payload)
	if err != nil {
		if errors.Is(err, runtime.ErrProgramNotFound) {
			return InvokeResult{}, apiErrs.NewProgramNotFoundError(program.String())
		}
		return InvokeResult{}, evaluationApiErr(err, res.Logs)
	}
	r, err := calc.ResultFromReturnData(res.ReturnData)
	if err != nil {
		return InvokeResult{}, errors.Wrapf(err, "program '%s' left no usable return data", program.String())
	}
	return InvokeResult{Success: true, Result: r, Logs: res.Logs}, nil
}

// evaluationApiErr converts an evaluation failure into its API error. Errors
// that carry no evaluation kind pass through untouched and surface as
// internal server errors.
func evaluationApiErr(err error, logs []string) error {
	kind := calc.GetEvaluationErrorType(err)
	if kind == calc.Undefined {
		return err
	}
	return apiErrs.NewEvaluationFailedError(kind.String(), errors.Cause(err).Error(), logs)
}

type Status struct {
	Version string `json:"version"`
	Program string `json:"program"`
	runtime.Stats
}

func (a *App) Status() Status {
	return Status{Version: a.version, Program: a.program.String(), Stats: a.rt.Stats()}
}

func (a *App) Operations() []calc.OperationInfo {
	return calc.Operations()
}
