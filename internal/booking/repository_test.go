package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildListSQL(t *testing.T, f Filter) (string, []any) {
	t.Helper()
	sql, args, err := listQuery(f).ToSql()
	require.NoError(t, err)
	return sql, args
}

func TestListQueryRoleScope(t *testing.T) {
	now := time.Now().UTC()

	sql, args := buildListSQL(t, Filter{UserID: 7, Role: RoleBooker, Bucket: BucketAll, Now: now, Limit: 20})
	assert.Contains(t, sql, "b.booker_id = $1")
	assert.Equal(t, []any{int64(7)}, args)

	sql, args = buildListSQL(t, Filter{UserID: 7, Role: RoleOwner, Bucket: BucketAll, Now: now, Limit: 20})
	assert.Contains(t, sql, "i.owner_id = $1")
	assert.Equal(t, []any{int64(7)}, args)
}

func TestListQueryBuckets(t *testing.T) {
	now := time.Now().UTC()
	base := Filter{UserID: 7, Role: RoleBooker, Now: now, Limit: 20}

	all, allArgs := buildListSQL(t, withBucket(base, BucketAll))
	assert.NotContains(t, all, "b.start_time <")
	assert.NotContains(t, all, "b.status =")
	assert.Len(t, allArgs, 1, "ALL adds no predicate beyond the role scope")

	current, currentArgs := buildListSQL(t, withBucket(base, BucketCurrent))
	assert.Contains(t, current, "b.start_time <= $2")
	assert.Contains(t, current, "b.end_time >= $3")
	assert.Equal(t, []any{int64(7), now, now}, currentArgs)

	past, _ := buildListSQL(t, withBucket(base, BucketPast))
	assert.Contains(t, past, "b.end_time < $2")

	future, _ := buildListSQL(t, withBucket(base, BucketFuture))
	assert.Contains(t, future, "b.start_time > $2")

	waiting, waitingArgs := buildListSQL(t, withBucket(base, BucketWaiting))
	assert.Contains(t, waiting, "b.status = $2")
	assert.Equal(t, []any{int64(7), StatusWaiting}, waitingArgs)

	rejected, rejectedArgs := buildListSQL(t, withBucket(base, BucketRejected))
	assert.Contains(t, rejected, "b.status IN ($2,$3)")
	assert.Equal(t, []any{int64(7), StatusRejected, StatusCanceled}, rejectedArgs)
}

func TestListQueryOrderAndPage(t *testing.T) {
	sql, _ := buildListSQL(t, Filter{UserID: 7, Role: RoleBooker, Bucket: BucketAll, Now: time.Now(), Limit: 3, Offset: 6})
	assert.Contains(t, sql, "ORDER BY b.start_time DESC, b.id DESC")
	assert.Contains(t, sql, "LIMIT 3")
	assert.Contains(t, sql, "OFFSET 6")
}

func withBucket(f Filter, b Bucket) Filter {
	f.Bucket = b
	return f
}
