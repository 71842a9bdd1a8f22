package api

import (
	"context"
	"encoding/json"
	"net"
	"net/http"

	"github.com/pkg/errors"
	"github.com/valyala/bytebufferpool"
	"go.uber.org/zap"
	"golang.org/x/net/netutil"

	apiErrs "github.com/bytecalc/gobytecalc/pkg/api/errors"
	"github.com/bytecalc/gobytecalc/pkg/proto"
)

// HostApi is the HTTP surface of the calculator host.
type HostApi struct {
	app *App
}

func NewHostApi(app *App) *HostApi {
	return &HostApi{app: app}
}

func (a *HostApi) EvaluateInstruction(w http.ResponseWriter, r *http.Request) error {
	i := proto.Instruction{}
	if err := json.NewDecoder(r.Body).Decode(&i); err != nil {
		return apiErrs.NewInvalidRequestError(errors.Wrap(err, "failed to parse instruction").Error())
	}
	res, err := a.app.Evaluate(i)
	if err != nil {
		return err
	}
	return sendJson(w, res)
}

type invokeRequest struct {
	Program  string   `json:"program,omitempty"`
	Payload  []byte   `json:"payload"`
	Accounts []string `json:"accounts,omitempty"`
}

func (a *HostApi) Invoke(w http.ResponseWriter, r *http.Request) error {
	req := invokeRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return apiErrs.NewInvalidRequestError(errors.Wrap(err, "failed to parse invocation request").Error())
	}
	program := a.app.Program()
	if req.Program != "" {
		var err error
		program, err = proto.NewAddressFromString(req.Program)
		if err != nil {
			return apiErrs.NewInvalidRequestError(errors.Wrap(err, "invalid program address").Error())
		}
	}
	accounts := make([]proto.Address, 0, len(req.Accounts))
	for _, s := range req.Accounts {
		account, err := proto.NewAddressFromString(s)
		if err != nil {
			return apiErrs.NewInvalidRequestError(errors.Wrapf(err, "invalid account address '%s'", s).Error())
		}
		accounts = append(accounts, account)
	}
	res, err := a.app.Invoke(r.Context(), program, accounts, req.Payload)
	if err != nil {
		return err
	}
	return sendJson(w, res)
}

// EncodeInstruction renders the JSON form of an instruction as the raw
// payload bytes the program accepts.
func (a *HostApi) EncodeInstruction(w http.ResponseWriter, r *http.Request) error {
	i := proto.Instruction{}
	if err := json.NewDecoder(r.Body).Decode(&i); err != nil {
		return apiErrs.NewInvalidRequestError(errors.Wrap(err, "failed to parse instruction").Error())
	}
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	if _, err := i.WriteTo(buf); err != nil {
		return errors.Wrap(err, "failed to encode instruction")
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	if _, err := w.Write(buf.Bytes()); err != nil {
		return errors.Wrap(err, "failed to write payload")
	}
	return nil
}

func (a *HostApi) Operations(w http.ResponseWriter, _ *http.Request) error {
	return sendJson(w, a.app.Operations())
}

func (a *HostApi) Status(w http.ResponseWriter, _ *http.Request) error {
	return sendJson(w, a.app.Status())
}

func sendJson(w http.ResponseWriter, v any) error {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		return errors.Wrap(err, "failed to marshal response to JSON")
	}
	return nil
}

// Run serves the API at address until ctx is cancelled.
func Run(ctx context.Context, address string, a *HostApi, opts *RunOptions) error {
	if opts == nil {
		opts = DefaultRunOptions()
	}
	routes, err := a.routes(opts)
	if err != nil {
		return errors.Wrap(err, "failed to build API routes")
	}
	l, err := net.Listen("tcp", address)
	if err != nil {
		return errors.Wrapf(err, "failed to bind '%s'", address)
	}
	if opts.MaxConnections > 0 {
		l = netutil.LimitListener(l, opts.MaxConnections)
	}
	apiServer := &http.Server{Addr: address, Handler: routes}
	go func() {
		<-ctx.Done()
		zap.S().Info("Shutting down API...")
		if err := apiServer.Shutdown(context.Background()); err != nil {
			zap.S().Errorf("Failed to shutdown API server: %v", err)
		}
	}()
	err = apiServer.Serve(l)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
