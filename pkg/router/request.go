package router

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/mitchellh/mapstructure"
	"github.com/yatube-lab/backend/pkg/errorx"
	"github.com/yatube-lab/backend/pkg/xcontext"
)

const defaultMaxMemory = 32 << 20

// parseRequest decodes path variables, query parameters and, for POST
// requests, form values into a new Request. Fields are matched by their json
// tag. Path variables win over form values which win over query parameters.
func parseRequest[Request any](ctx context.Context) (*Request, error) {
	req := xcontext.HTTPRequest(ctx)
	values := map[string]any{}

	for k, v := range req.URL.Query() {
		if len(v) > 0 {
			values[k] = v[0]
		}
	}

	if req.Method == http.MethodPost {
		if err := parseForm(ctx, req); err != nil {
			xcontext.Logger(ctx).Debugf("Cannot parse form: %v", err)
			return nil, errorx.New(errorx.BadRequest, "Invalid form")
		}

		for k, v := range req.PostForm {
			if len(v) > 0 {
				values[k] = v[0]
			}
		}
	}

	for k, v := range mux.Vars(req) {
		values[k] = v
	}

	var result Request
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           &result,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create decoder: %v", err)
		return nil, errorx.Unknown
	}

	if err := decoder.Decode(values); err != nil {
		xcontext.Logger(ctx).Debugf("Cannot decode request: %v", err)
		return nil, errorx.New(errorx.BadRequest, "Invalid request")
	}

	return &result, nil
}

func parseForm(ctx context.Context, req *http.Request) error {
	if !strings.HasPrefix(req.Header.Get("Content-Type"), "multipart/form-data") {
		return req.ParseForm()
	}

	maxMemory := int64(defaultMaxMemory)
	if size := xcontext.Configs(ctx).File.MaxSize; size > 0 {
		maxMemory = int64(size) << 20
	}

	err := req.ParseMultipartForm(maxMemory)
	if errors.Is(err, http.ErrNotMultipart) {
		return nil
	}

	return err
}
