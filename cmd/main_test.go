package main

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"julianmorley.ca/con-plar/storefront/pkg/global"
	"julianmorley.ca/con-plar/storefront/pkg/memory"
	"julianmorley.ca/con-plar/storefront/pkg/models"
)

func countEntries(hook *test.Hook, prefix string) int {
	n := 0
	for _, entry := range hook.AllEntries() {
		if strings.HasPrefix(entry.Message, prefix) {
			n++
		}
	}
	return n
}

func TestOpenStore_Memory(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()

	st, err := openStore(context.Background(), &global.Config{StoreDriver: global.DriverMemory})
	require.NoError(t, err)
	assert.IsType(t, &memory.Store{}, st)
	assert.Equal(t, 1, countEntries(hook, "Using in-memory store"))
}

func TestOpenStore_MongoLogsConnectionOnce(t *testing.T) {
	uri := os.Getenv("MONGODB_TEST_URI")
	if uri == "" {
		t.Skip("MONGODB_TEST_URI not set")
	}
	hook := test.NewGlobal()
	defer hook.Reset()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	st, err := openStore(ctx, &global.Config{
		StoreDriver:   global.DriverMongo,
		MongoURI:      uri,
		MongoDatabase: "storefront_test_" + models.NewID()[:8],
	})
	require.NoError(t, err)
	defer st.Close(ctx)

	assert.Equal(t, 1, countEntries(hook, "Connected to MongoDB"))
}
