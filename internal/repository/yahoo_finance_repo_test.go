package repository

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"trendbot/config"
	"trendbot/pkg/httpclient"
	"trendbot/pkg/logger"
)

type fakeChartClient struct {
	body   string
	status int
	err    error
}

func (f *fakeChartClient) Get(ctx context.Context, endpoint string, queryParams, headers map[string]string, result interface{}) (*httpclient.BaseResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	if err := json.Unmarshal([]byte(f.body), result); err != nil {
		return nil, err
	}
	return &httpclient.BaseResponse{StatusCode: f.status, Body: []byte(f.body)}, nil
}

func newChartRepo(t *testing.T, client httpclient.HTTPClient) *yahooFinanceRepository {
	t.Helper()
	log, err := logger.New("error", "console")
	require.NoError(t, err)
	return &yahooFinanceRepository{
		httpClient:     client,
		cfg:            &config.Config{},
		log:            log,
		requestLimiter: rate.NewLimiter(rate.Inf, 1),
	}
}

func TestFetchDailyBarsDistinguishesNullFromZero(t *testing.T) {
	body := `{"chart":{"result":[{
		"timestamp":[1756166400,1756252800,1756339200],
		"indicators":{"quote":[{
			"open":[100.0,null,101.0],
			"high":[101.0,null,102.0],
			"low":[99.5,null,100.5],
			"close":[100.5,null,101.25],
			"volume":[0,1000,null]
		}]}
	}],"error":null}}`
	repo := newChartRepo(t, &fakeChartClient{body: body, status: http.StatusOK})

	series, err := repo.FetchDailyBars(context.Background(), "VWRA.L", 30)
	require.NoError(t, err)

	require.Len(t, series, 2, "only the null-close bar is dropped")
	assert.Equal(t, 100.5, series[0].Close)
	assert.Equal(t, 0.0, series[0].Volume, "a real zero volume must survive")
	assert.Equal(t, 101.25, series[1].Close)
	assert.True(t, math.IsNaN(series[1].Volume), "a null volume decodes to NaN")
	assert.True(t, math.IsNaN(series[0].ShortMA), "fetched bars carry no averages yet")
}

func TestFetchDailyBarsEmptyResult(t *testing.T) {
	repo := newChartRepo(t, &fakeChartClient{
		body:   `{"chart":{"result":[],"error":null}}`,
		status: http.StatusOK,
	})

	series, err := repo.FetchDailyBars(context.Background(), "VWRA.L", 30)
	require.NoError(t, err)
	assert.Nil(t, series)
}

func TestFetchDailyBarsUpstreamError(t *testing.T) {
	repo := newChartRepo(t, &fakeChartClient{err: assert.AnError})

	_, err := repo.FetchDailyBars(context.Background(), "VWRA.L", 30)
	assert.Error(t, err)

	repo = newChartRepo(t, &fakeChartClient{
		body:   `{"chart":{"result":[],"error":null}}`,
		status: http.StatusInternalServerError,
	})
	_, err = repo.FetchDailyBars(context.Background(), "VWRA.L", 30)
	assert.Error(t, err)
}
