package main

import (
	"context"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/pkg/errors"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/bytecalc/gobytecalc/pkg/calc"
	"github.com/bytecalc/gobytecalc/pkg/client"
	"github.com/bytecalc/gobytecalc/pkg/proto"
	"github.com/bytecalc/gobytecalc/pkg/runtime"
)

const defaultScheme = "http"

var version = "v0.1.0"

func main() {
	var showHelp bool
	var showVersion bool
	var operation string
	var left int64
	var right int64
	var node string
	var retry time.Duration
	var encode bool
	var verbose bool
	var silent bool

	flag.StringVarP(&operation, "operation", "o", "", "Operation to perform: add, subtract, multiply, divide, modulo or power")
	flag.Int64VarP(&left, "left", "l", 0, "Left operand")
	flag.Int64VarP(&right, "right", "r", 0, "Right operand")
	flag.StringVarP(&node, "node", "n", "", "URL of the calculator host, for example \"http://127.0.0.1:8080\"; empty evaluates locally")
	flag.DurationVar(&retry, "retry", 0, "Keep retrying an unreachable host for the given duration, for example 30s")
	flag.BoolVar(&encode, "encode", false, "Print the encoded instruction payload and quit")
	flag.BoolVarP(&showHelp, "help", "h", false, "Print usage information (this message) and quit")
	flag.BoolVarP(&showVersion, "version", "v", false, "Print version information and quit")
	flag.BoolVar(&verbose, "verbose", false, "Logs additional information; incompatible with \"silent\"")
	flag.BoolVar(&silent, "silent", false, "Produce no log output; incompatible with \"verbose\"")
	flag.Usage = showUsageAndExit
	flag.Parse()

	if showHelp {
		showUsageAndExit()
	}
	if showVersion {
		showVersionAndExit()
	}
	if silent && verbose {
		showUsageAndExit()
	}
	al := zap.NewAtomicLevel()
	ec := zap.NewDevelopmentEncoderConfig()
	if verbose {
		al.SetLevel(zap.DebugLevel)
	}
	if silent {
		al.SetLevel(zap.FatalLevel)
	}
	logger := zap.New(zapcore.NewCore(zapcore.NewConsoleEncoder(ec), zapcore.Lock(os.Stdout), al))
	defer func() {
		_ = logger.Sync()
	}()
	log := logger.Sugar()

	op, err := proto.NewOperationFromString(operation)
	if err != nil {
		log.Errorf("Incorrect operation: %s", err.Error())
		os.Exit(2)
	}
	i := proto.Instruction{Operation: op, Left: left, Right: right}
	payload, err := i.MarshalBinary()
	if err != nil {
		log.Errorf("Failed to encode instruction: %s", err.Error())
		os.Exit(2)
	}

	if encode {
		fmt.Println(base64.StdEncoding.EncodeToString(payload))
		fmt.Println(hex.EncodeToString(payload))
		os.Exit(0)
	}

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
		log.Infof("Shutting down")
		os.Exit(1)
	}()

	log.Debugf("Instruction: %s %d %d", op.String(), left, right)
	log.Debugf("Payload: %s", hex.EncodeToString(payload))

	var result int64
	var logs []string
	if node != "" {
		result, logs, err = invokeRemote(appCtx, log, node, payload, retry)
	} else {
		result, logs, err = invokeLocal(appCtx, logger, payload)
	}
	for _, line := range logs {
		log.Info(line)
	}
	if err != nil {
		log.Errorf("Evaluation failed: %s", err.Error())
		os.Exit(1)
	}
	fmt.Println(result)
	os.Exit(0)
}

func invokeRemote(ctx context.Context, log *zap.SugaredLogger, node string, payload []byte, retry time.Duration) (int64, []string, error) {
	u, err := checkAndUpdateURL(node)
	if err != nil {
		log.Errorf("Incorrect node's URL: %s", err.Error())
		os.Exit(2)
	}
	c, err := client.NewClient(client.Options{BaseUrl: u, Client: &http.Client{Timeout: 30 * time.Second}})
	if err != nil {
		log.Errorf("Failed to create client for URL '%s': %s", u, err)
		os.Exit(2)
	}
	log.Debugf("Invoking calculator at '%s'", u)

	var out *client.InvokeResult
	call := func() error {
		res, _, invokeErr := c.Calc.Invoke(ctx, payload, nil)
		if invokeErr != nil {
			reqErr := new(client.RequestError)
			if errors.As(invokeErr, &reqErr) && reqErr.Body != "" {
				return backoff.Permanent(invokeErr)
			}
			return invokeErr
		}
		out = res
		return nil
	}
	if retry > 0 {
		err = client.RetryCtx(ctx, retry, call)
	} else {
		err = call()
	}
	if err != nil {
		logs, fErr := remoteFailure(err)
		return 0, logs, fErr
	}
	return out.Result, out.Logs, nil
}

// remoteFailure recovers the evaluation verdict and trace from the JSON body
// of an error response.
func remoteFailure(err error) ([]string, error) {
	reqErr := new(client.RequestError)
	if errors.As(err, &reqErr) && reqErr.Body != "" {
		body := struct {
			Err     string   `json:"error"`
			Message string   `json:"message"`
			Logs    []string `json:"logs"`
		}{}
		if jErr := json.Unmarshal([]byte(reqErr.Body), &body); jErr == nil && body.Err != "" {
			return body.Logs, errors.Errorf("%s: %s", body.Err, body.Message)
		}
	}
	return nil, err
}

func invokeLocal(ctx context.Context, logger *zap.Logger, payload []byte) (int64, []string, error) {
	rt, err := runtime.NewRuntime(runtime.WithLogger(logger))
	if err != nil {
		return 0, nil, err
	}
	program := calc.DefaultAddress()
	if err := rt.Register(program, calc.CalculatorProgram{}); err != nil {
		return 0, nil, err
	}
	res, err := rt.Invoke(ctx, program, nil, payload)
	if err != nil {
		return 0, res.Logs, err
	}
	r, err := calc.ResultFromReturnData(res.ReturnData)
	if err != nil {
		return 0, res.Logs, err
	}
	return r, res.Logs, nil
}

func checkAndUpdateURL(s string) (string, error) {
	var u *url.URL
	var err error
	if strings.Contains(s, "//") {
		u, err = url.Parse(s)
	} else {
		u, err = url.Parse("//" + s)
	}
	if err != nil {
		return "", errors.Wrapf(err, "failed to parse URL '%s'", s)
	}
	if u.Scheme == "" {
		u.Scheme = defaultScheme
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", errors.Errorf("unsupported URL scheme '%s'", u.Scheme)
	}
	return u.String(), nil
}

func showUsageAndExit() {
	fmt.Println("usage: calc [flags]")
	flag.PrintDefaults()
	os.Exit(0)
}

func showVersionAndExit() {
	fmt.Printf("calc %s\n", version)
	os.Exit(0)
}
