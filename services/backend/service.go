package backendsvc

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sendgrid/rest"

	"github.com/Zhalalov2-code/online-course/core"
	"github.com/Zhalalov2-code/online-course/core/normalize"
)

type restService struct {
	baseURL string
	timeout time.Duration
	client  *rest.Client
	log     core.Logger
}

var _ core.Backend = (*restService)(nil)

// NewRestService returns a core.Backend talking to the REST API at conf.Backend.URL.
func NewRestService(conf *core.Config, logger core.Logger) core.Backend {
	return &restService{
		baseURL: strings.TrimRight(conf.Backend.URL, "/"),
		timeout: conf.Backend.Timeout,
		client:  &rest.Client{HTTPClient: &http.Client{}},
		log:     logger,
	}
}

func (svc *restService) Get(ctx context.Context, resource string, params url.Values) (interface{}, error) {
	return svc.send(ctx, rest.Request{
		Method:      rest.Get,
		BaseURL:     svc.url(resource),
		Headers:     map[string]string{"Accept": "application/json"},
		QueryParams: flatten(params),
	})
}

// Post sends form as application/x-www-form-urlencoded, which is what the backend understands.
func (svc *restService) Post(ctx context.Context, resource string, form url.Values) (interface{}, error) {
	return svc.send(ctx, rest.Request{
		Method:  rest.Post,
		BaseURL: svc.url(resource),
		Headers: map[string]string{
			"Accept":       "application/json",
			"Content-Type": "application/x-www-form-urlencoded",
		},
		Body: []byte(form.Encode()),
	})
}

func (svc *restService) url(resource string) string {
	return svc.baseURL + "/" + strings.TrimLeft(resource, "/")
}

func (svc *restService) send(ctx context.Context, req rest.Request) (interface{}, error) {
	if svc.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, svc.timeout)
		defer cancel()
	}

	resource := strings.TrimPrefix(req.BaseURL, svc.baseURL+"/")
	hreq, err := rest.BuildRequestObject(req)
	if err != nil {
		return nil, errors.Wrapf(err, "%s %s", req.Method, resource)
	}
	hres, err := svc.client.MakeRequest(hreq.WithContext(ctx))
	if err != nil {
		return nil, errors.Wrapf(err, "%s %s", req.Method, resource)
	}
	res, err := rest.BuildResponse(hres)
	if err != nil {
		return nil, errors.Wrapf(err, "%s %s: reading body", req.Method, resource)
	}
	if res.StatusCode >= http.StatusBadRequest {
		return nil, errors.WithStack(&core.BackendError{Resource: resource, Status: res.StatusCode, Body: res.Body})
	}
	return decodeBody(res.Body, svc.log, resource), nil
}

// decodeBody decodes a JSON body. Empty bodies decode to nil; anything else that is not JSON
// is handed back as an opaque string.
func decodeBody(body string, logger core.Logger, resource string) interface{} {
	if strings.TrimSpace(body) == "" {
		return nil
	}
	v, err := normalize.Decode([]byte(body))
	if err != nil {
		if logger != nil {
			logger.Debug("non-JSON response from "+resource, err)
		}
		return body
	}
	return v
}

func flatten(params url.Values) map[string]string {
	if len(params) == 0 {
		return nil
	}
	flat := make(map[string]string, len(params))
	for key, values := range params {
		if len(values) > 0 {
			flat[key] = values[0]
		}
	}
	return flat
}
