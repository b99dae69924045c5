package jetstream_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	natsgo "github.com/nats-io/nats.go"
	natsjs "github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldhouse/capledger/internal/adapter"
	"github.com/fieldhouse/capledger/internal/domain"
	"github.com/fieldhouse/capledger/internal/logger"
	"github.com/fieldhouse/capledger/internal/mocks"
	"github.com/fieldhouse/capledger/internal/providers/jetstream"
)

func TestMain(m *testing.M) {
	// Initialize logger for tests
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

type testPublisherMocks struct {
	ctrl   *gomock.Controller
	natsJS *mocks.MockNatsJetStream
	conn   *mocks.MockNatsConn
	js     *mocks.MockJetStream
}

func setupTest(t *testing.T) *testPublisherMocks {
	ctrl := gomock.NewController(t)
	return &testPublisherMocks{
		ctrl:   ctrl,
		natsJS: mocks.NewMockNatsJetStream(ctrl),
		conn:   mocks.NewMockNatsConn(ctrl),
		js:     mocks.NewMockJetStream(ctrl),
	}
}

func testConfig() jetstream.Config {
	return jetstream.Config{
		URL:            "nats://localhost:4222",
		StreamName:     "CONTRACT_REBUILDS",
		MaxReconnects:  3,
		ReconnectWait:  time.Second,
		ConnectionName: "capledger-test",
	}
}

func testNotice() *domain.RebuildNotice {
	return &domain.RebuildNotice{
		NoticeID:       "notice-1",
		RebuildID:      "rebuild-1",
		AsOfDate:       time.Date(2030, 6, 1, 0, 0, 0, 0, time.UTC),
		AsOfCycle:      2030,
		PeriodCount:    12,
		RejectionCount: 1,
		CompletedAt:    time.Date(2030, 6, 1, 3, 0, 0, 0, time.UTC),
	}
}

func TestNewPublisher_ConnectFailure(t *testing.T) {
	tm := setupTest(t)
	defer tm.ctrl.Finish()

	tm.natsJS.EXPECT().
		Connect(testConfig().URL, gomock.Any()).
		Return(nil, nil, errors.New("connection refused"))

	_, err := jetstream.NewPublisher(testConfig(), tm.natsJS, adapter.NewJSON())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect to NATS")
}

func TestPublishRebuildCompleted_PublishesJSONNotice(t *testing.T) {
	tm := setupTest(t)
	defer tm.ctrl.Finish()

	tm.natsJS.EXPECT().
		Connect(testConfig().URL, gomock.Any()).
		Return(tm.conn, tm.js, nil)

	notice := testNotice()
	tm.js.EXPECT().
		Publish(gomock.Any(), jetstream.SubjectRebuildCompleted, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, data []byte, _ ...natsjs.PublishOpt) (*natsjs.PubAck, error) {
			var decoded domain.RebuildNotice
			require.NoError(t, json.Unmarshal(data, &decoded))
			assert.Equal(t, *notice, decoded)
			return &natsjs.PubAck{}, nil
		})

	publisher, err := jetstream.NewPublisher(testConfig(), tm.natsJS, adapter.NewJSON())
	require.NoError(t, err)

	err = publisher.PublishRebuildCompleted(context.Background(), notice)
	assert.NoError(t, err)
}

func TestPublishRebuildCompleted_MarshalFailure(t *testing.T) {
	tm := setupTest(t)
	defer tm.ctrl.Finish()

	tm.natsJS.EXPECT().
		Connect(testConfig().URL, gomock.Any()).
		Return(tm.conn, tm.js, nil)

	jsonAdapter := mocks.NewMockJSON(tm.ctrl)
	jsonAdapter.EXPECT().
		Marshal(gomock.Any()).
		Return(nil, errors.New("marshal boom"))

	publisher, err := jetstream.NewPublisher(testConfig(), tm.natsJS, jsonAdapter)
	require.NoError(t, err)

	err = publisher.PublishRebuildCompleted(context.Background(), testNotice())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to marshal rebuild notice")
}

func TestPublishRebuildCompleted_PublishFailure(t *testing.T) {
	tm := setupTest(t)
	defer tm.ctrl.Finish()

	tm.natsJS.EXPECT().
		Connect(testConfig().URL, gomock.Any()).
		Return(tm.conn, tm.js, nil)

	tm.js.EXPECT().
		Publish(gomock.Any(), jetstream.SubjectRebuildCompleted, gomock.Any()).
		Return(nil, natsgo.ErrConnectionClosed)

	publisher, err := jetstream.NewPublisher(testConfig(), tm.natsJS, adapter.NewJSON())
	require.NoError(t, err)

	err = publisher.PublishRebuildCompleted(context.Background(), testNotice())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to publish rebuild notice")
}

func TestClose_ClosesConnection(t *testing.T) {
	tm := setupTest(t)
	defer tm.ctrl.Finish()

	tm.natsJS.EXPECT().
		Connect(testConfig().URL, gomock.Any()).
		Return(tm.conn, tm.js, nil)
	tm.conn.EXPECT().Close()

	publisher, err := jetstream.NewPublisher(testConfig(), tm.natsJS, adapter.NewJSON())
	require.NoError(t, err)

	publisher.Close()
}
