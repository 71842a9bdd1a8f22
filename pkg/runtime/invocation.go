package runtime

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/bytecalc/gobytecalc/pkg/proto"
)

// Invocation is the per-call context handed to a program. It carries the
// invoked program's address, the account context and the raw instruction
// payload, collects the trace lines the program emits and holds the return
// data the program sets.
type Invocation struct {
	program    proto.Address
	accounts   []proto.Address
	data       []byte
	logger     *zap.Logger
	logs       []string
	returnData []byte
}

// Program returns the address the invocation was dispatched to.
func (ic *Invocation) Program() proto.Address {
	return ic.program
}

// Accounts returns the account context of the invocation. Programs are free
// to ignore it.
func (ic *Invocation) Accounts() []proto.Address {
	return ic.accounts
}

// Data returns the raw instruction payload of the invocation.
func (ic *Invocation) Data() []byte {
	return ic.data
}

// Log appends a trace line to the invocation log and mirrors it to the
// runtime logger.
func (ic *Invocation) Log(line string) {
	ic.logs = append(ic.logs, line)
	ic.logger.Debug(line, zap.Stringer("program", ic.program))
}

// Logf formats a trace line and appends it to the invocation log.
func (ic *Invocation) Logf(format string, args ...interface{}) {
	ic.Log(fmt.Sprintf(format, args...))
}

// SetReturnData replaces the return data of the invocation.
func (ic *Invocation) SetReturnData(data []byte) {
	ic.returnData = data
}

func (ic *Invocation) result() InvocationResult {
	return InvocationResult{Logs: ic.logs, ReturnData: ic.returnData}
}

// InvocationResult is the observable outcome of a single invocation. Both
// fields are populated even when the invocation fails, so callers can
// inspect the trace of a failed program.
type InvocationResult struct {
	Logs       []string `json:"logs"`
	ReturnData []byte   `json:"returnData,omitempty"`
}
