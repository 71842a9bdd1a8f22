package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apiErrs "github.com/bytecalc/gobytecalc/pkg/api/errors"
)

func TestErrorHandler_Handle(t *testing.T) {
	var (
		mustJSON = func(err error) string {
			data, mErr := json.Marshal(err)
			require.NoError(t, mErr)
			return string(data)
		}
		divisionErr = apiErrs.NewEvaluationFailedError("DivisionByZero", "div: division by zero",
			[]string{"Division: 10 / 0", "Division by zero is not allowed"})
		overflowErr = apiErrs.NewEvaluationFailedError("ArithmeticOverflow", "mul: result out of int64 range", nil)
		notFoundErr = apiErrs.NewProgramNotFoundError("6sKMMHVLyCQN7Juih2e9tbSmeE5Hu7L8XtBRgowJQvU7")
		invalidErr  = apiErrs.NewInvalidRequestError("failed to parse instruction: unexpected EOF")
		unknownErr  = apiErrs.NewUnknownError(errors.New("unknown"))
		defaultErr  = errors.New("default")
	)
	tests := []struct {
		name         string
		err          error
		expectedCode int
		expectedBody string
	}{
		{
			name:         "EvaluationFailedCase",
			err:          divisionErr,
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"error":"DivisionByZero","message":"div: division by zero",` +
				`"logs":["Division: 10 / 0","Division by zero is not allowed"]}` + "\n",
		},
		{
			name:         "EvaluationFailedWithoutLogsCase",
			err:          overflowErr,
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"error":"ArithmeticOverflow","message":"mul: result out of int64 range"}` + "\n",
		},
		{
			name:         "ErrorWithMultipleWraps",
			err:          errors.Wrap(errors.Wrap(notFoundErr, "wrap1"), "wrap2"),
			expectedCode: http.StatusNotFound,
			expectedBody: mustJSON(notFoundErr) + "\n",
		},
		{
			name:         "ErrorWithStack",
			err:          errors.WithStack(errors.WithStack(invalidErr)),
			expectedCode: http.StatusBadRequest,
			expectedBody: mustJSON(invalidErr) + "\n",
		},
		{
			name:         "UnknownErrorCase",
			err:          unknownErr,
			expectedCode: unknownErr.GetHttpCode(),
			expectedBody: mustJSON(unknownErr) + "\n",
		},
		{
			name:         "DefaultCase",
			err:          defaultErr,
			expectedCode: http.StatusInternalServerError,
			expectedBody: mustJSON(apiErrs.NewUnknownError(defaultErr)) + "\n",
		},
		{
			name:         "NilCase",
			err:          nil,
			expectedCode: 200,
			expectedBody: "",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var (
				w = httptest.NewRecorder()
				r = httptest.NewRequest(http.MethodGet, "http://localhost:8080", nil)
			)
			h := NewErrorHandler(zap.NewNop())
			h.Handle(w, r, test.err)
			assert.Equal(t, test.expectedCode, w.Code)
			assert.Equal(t, test.expectedBody, w.Body.String())
		})
	}
}
