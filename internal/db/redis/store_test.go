package redis

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/redis/rueidis"
	"github.com/redis/rueidis/mock"
	"go.uber.org/mock/gomock"

	"github.com/kailas-cloud/omnisearch/internal/db"
)

// --- client.go tests ---

func TestPing_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("PING")).
		Return(mock.Result(mock.RedisString("PONG")))

	s := NewStoreForTest(c)
	if err := s.Ping(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPing_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("PING")).
		Return(mock.ErrorResult(context.DeadlineExceeded))

	s := NewStoreForTest(c)
	if err := s.Ping(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestNewStore_RequiresAddrs(t *testing.T) {
	if _, err := NewStore(Config{}); err == nil {
		t.Fatal("expected error for empty addrs")
	}
}

// --- hash.go tests ---

func TestHSet_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			return cmd[0] == "HSET" && cmd[1] == "omni:parent:p1"
		})).
		Return(mock.Result(mock.RedisInt64(1)))

	s := NewStoreForTest(c)
	err := s.HSet(context.Background(), "omni:parent:p1", map[string]string{"name": "Jane"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestHSet_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			return cmd[0] == "HSET"
		})).
		Return(mock.ErrorResult(context.DeadlineExceeded))

	s := NewStoreForTest(c)
	err := s.HSet(context.Background(), "k", map[string]string{"f": "v"})
	if err == nil {
		t.Fatal("expected error")
	}
	if !isDBError(err) {
		t.Errorf("expected db.Error, got %T", err)
	}
}

func TestHSetMulti_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		DoMulti(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]rueidis.RedisResult{
			mock.Result(mock.RedisInt64(2)),
			mock.Result(mock.RedisInt64(2)),
		})

	s := NewStoreForTest(c)
	err := s.HSetMulti(context.Background(), []db.HashSetItem{
		{Key: "k1", Fields: map[string]string{"f1": "v1"}},
		{Key: "k2", Fields: map[string]string{"f2": "v2"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestHSetMulti_Empty(t *testing.T) {
	s := NewStoreForTest(nil)
	if err := s.HSetMulti(context.Background(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// --- set.go tests ---

func TestSAdd_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("SADD", "omni:following:u1", "p1", "p2")).
		Return(mock.Result(mock.RedisInt64(2)))

	s := NewStoreForTest(c)
	if err := s.SAdd(context.Background(), "omni:following:u1", "p1", "p2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSAdd_NoMembers(t *testing.T) {
	s := NewStoreForTest(nil)
	if err := s.SAdd(context.Background(), "k"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSMIsMember_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("SMISMEMBER", "omni:following:u1", "p1", "p2", "p3")).
		Return(mock.Result(mock.RedisArray(
			mock.RedisInt64(1),
			mock.RedisInt64(0),
			mock.RedisInt64(1),
		)))

	s := NewStoreForTest(c)
	got, err := s.SMIsMember(context.Background(), "omni:following:u1", "p1", "p2", "p3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []bool{true, false, true}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("member %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSMIsMember_ReplyMismatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), gomock.Any()).
		Return(mock.Result(mock.RedisArray(mock.RedisInt64(1))))

	s := NewStoreForTest(c)
	_, err := s.SMIsMember(context.Background(), "k", "a", "b")
	if !isDBError(err) {
		t.Fatalf("expected db.Error, got %v", err)
	}
}

func TestSMIsMember_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), gomock.Any()).
		Return(mock.ErrorResult(context.DeadlineExceeded))

	s := NewStoreForTest(c)
	if _, err := s.SMIsMember(context.Background(), "k", "a"); !isDBError(err) {
		t.Fatalf("expected db.Error, got %v", err)
	}
}

func TestSInterCardMulti_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		DoMulti(gomock.Any(),
			mock.Match("SINTERCARD", "2", "omni:following:u1", "omni:followers:p1"),
			mock.Match("SINTERCARD", "2", "omni:following:u1", "omni:followers:p2"),
		).
		Return([]rueidis.RedisResult{
			mock.Result(mock.RedisInt64(3)),
			mock.Result(mock.RedisInt64(0)),
		})

	s := NewStoreForTest(c)
	got, err := s.SInterCardMulti(context.Background(), [][]string{
		{"omni:following:u1", "omni:followers:p1"},
		{"omni:following:u1", "omni:followers:p2"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0] != 3 || got[1] != 0 {
		t.Errorf("unexpected counts: %v", got)
	}
}

func TestSInterCardMulti_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		DoMulti(gomock.Any(), gomock.Any()).
		Return([]rueidis.RedisResult{mock.ErrorResult(context.DeadlineExceeded)})

	s := NewStoreForTest(c)
	_, err := s.SInterCardMulti(context.Background(), [][]string{{"a", "b"}})
	if !isDBError(err) {
		t.Fatalf("expected db.Error, got %v", err)
	}
}

// --- index.go tests ---

func testIndex() *db.IndexDefinition {
	return db.NewIndex("omni:parent:idx").
		Prefix("omni:parent:").
		NoStopwords().
		Name("name", 2).
		Text("username").
		Tag("phone_digits").
		Numeric("mutual_count").
		MustBuild()
}

func TestCreateIndex_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			return cmd[0] == "FT.CREATE" && cmd[1] == "omni:parent:idx"
		})).
		Return(mock.Result(mock.RedisString("OK")))

	s := NewStoreForTest(c)
	if err := s.CreateIndex(context.Background(), testIndex()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCreateIndex_AlreadyExists(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			return cmd[0] == "FT.CREATE"
		})).
		Return(mock.Result(mock.RedisError("Index already exists")))

	s := NewStoreForTest(c)
	err := s.CreateIndex(context.Background(), testIndex())
	if !errors.Is(err, db.ErrIndexExists) {
		t.Errorf("expected ErrIndexExists, got %v", err)
	}
}

func TestCreateIndex_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			return cmd[0] == "FT.CREATE"
		})).
		Return(mock.ErrorResult(context.DeadlineExceeded))

	s := NewStoreForTest(c)
	if err := s.CreateIndex(context.Background(), testIndex()); !isDBError(err) {
		t.Errorf("expected db.Error, got %v", err)
	}
}

func TestDropIndex_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("FT.DROPINDEX", "idx")).
		Return(mock.Result(mock.RedisString("OK")))

	s := NewStoreForTest(c)
	if err := s.DropIndex(context.Background(), "idx"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDropIndex_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("FT.DROPINDEX", "idx")).
		Return(mock.Result(mock.RedisError("Unknown Index name")))

	s := NewStoreForTest(c)
	if err := s.DropIndex(context.Background(), "idx"); !errors.Is(err, db.ErrIndexNotFound) {
		t.Errorf("expected ErrIndexNotFound, got %v", err)
	}
}

func TestIndexExists_True(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("FT.INFO", "idx")).
		Return(mock.Result(mock.RedisArray(mock.RedisString("index_name"), mock.RedisString("idx"))))

	s := NewStoreForTest(c)
	ok, err := s.IndexExists(context.Background(), "idx")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Error("expected index to exist")
	}
}

func TestIndexExists_False(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("FT.INFO", "idx")).
		Return(mock.Result(mock.RedisError("Unknown Index name")))

	s := NewStoreForTest(c)
	ok, err := s.IndexExists(context.Background(), "idx")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected index to be absent")
	}
}

func TestBuildCreateArgs(t *testing.T) {
	args, err := buildCreateArgs(testIndex())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := strings.Join(args, " ")
	want := "omni:parent:idx ON HASH PREFIX 1 omni:parent: STOPWORDS 0 SCHEMA " +
		"name TEXT NOSTEM WEIGHT 2 username TEXT phone_digits TAG mutual_count NUMERIC SORTABLE"
	if got != want {
		t.Errorf("args:\n got %q\nwant %q", got, want)
	}
}

func TestBuildCreateArgs_DefaultStopwords(t *testing.T) {
	args, err := buildCreateArgs(db.NewIndex("idx").Tag("t").MustBuild())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := strings.Join(args, " "); got != "idx ON HASH SCHEMA t TAG" {
		t.Errorf("args = %q", got)
	}
}

func TestBuildCreateArgs_Validation(t *testing.T) {
	if _, err := buildCreateArgs(&db.IndexDefinition{}); err == nil {
		t.Error("expected error for empty name")
	}
	if _, err := buildCreateArgs(&db.IndexDefinition{Name: "idx"}); err == nil {
		t.Error("expected error for no fields")
	}
}

func TestBuildFieldArgs(t *testing.T) {
	tests := []struct {
		name  string
		field db.IndexField
		want  string
	}{
		{"numeric", db.IndexField{Name: "rating", Type: db.IndexFieldNumeric}, "rating NUMERIC"},
		{"text", db.IndexField{Name: "bio", Type: db.IndexFieldText}, "bio TEXT"},
		{
			"text weighted",
			db.IndexField{Name: "name", Type: db.IndexFieldText, TextNoStem: true, TextWeight: 1.5},
			"name TEXT NOSTEM WEIGHT 1.5",
		},
		{"tag", db.IndexField{Name: "initials", Type: db.IndexFieldTag}, "initials TAG"},
		{
			"sortable",
			db.IndexField{Name: "review_count", Type: db.IndexFieldNumeric, Sortable: true},
			"review_count NUMERIC SORTABLE",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			args, err := buildFieldArgs(&tc.field)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := strings.Join(args, " "); got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestBuildFieldArgs_Errors(t *testing.T) {
	if _, err := buildFieldArgs(&db.IndexField{Type: db.IndexFieldText}); err == nil {
		t.Error("expected error for empty name")
	}
	if _, err := buildFieldArgs(&db.IndexField{Name: "x", Type: db.IndexFieldType(99)}); err == nil {
		t.Error("expected error for unknown type")
	}
}

// --- search.go tests ---

func TestSearchText_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	var captured []string
	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			captured = cmd
			return cmd[0] == "FT.SEARCH"
		})).
		Return(mock.Result(mock.RedisArray(
			mock.RedisInt64(2),
			mock.RedisString("omni:sitter:s1"),
			mock.RedisArray(mock.RedisString("name"), mock.RedisString("Jane Doe")),
			mock.RedisString("omni:sitter:s2"),
			mock.RedisArray(mock.RedisString("name"), mock.RedisString("Janet")),
		)))

	s := NewStoreForTest(c)
	res, err := s.SearchText(context.Background(), &db.TextQuery{
		IndexName:    "omni:sitter:idx",
		Query:        "(jane | jane*)",
		Limit:        50,
		ReturnFields: []string{"name"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Total != 2 || len(res.Entries) != 2 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.Entries[1].Key != "omni:sitter:s2" || res.Entries[1].Fields["name"] != "Janet" {
		t.Errorf("unexpected entry: %+v", res.Entries[1])
	}

	cmd := strings.Join(captured, " ")
	for _, part := range []string{"RETURN 1 name", "LIMIT 0 50", "DIALECT 2"} {
		if !strings.Contains(cmd, part) {
			t.Errorf("command %q missing %q", cmd, part)
		}
	}
}

func TestSearchText_TagFilterOnly(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			return cmd[0] == "FT.SEARCH" && cmd[2] == `@phone_digits:{2125551234} @phone_searchable:{true}`
		})).
		Return(mock.Result(mock.RedisArray(mock.RedisInt64(0))))

	s := NewStoreForTest(c)
	res, err := s.SearchText(context.Background(), &db.TextQuery{
		IndexName: "omni:parent:idx",
		Filters: []db.TagFilter{
			{Field: "phone_digits", Value: "2125551234"},
			{Field: "phone_searchable", Value: "true"},
		},
		Limit: 10,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Entries) != 0 {
		t.Errorf("expected no entries, got %d", len(res.Entries))
	}
}

func TestSearchText_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), gomock.Any()).
		Return(mock.ErrorResult(context.DeadlineExceeded))

	s := NewStoreForTest(c)
	_, err := s.SearchText(context.Background(), &db.TextQuery{IndexName: "idx", Query: "x", Limit: 1})
	if !isDBError(err) {
		t.Fatalf("expected db.Error, got %v", err)
	}
}

func TestSearchText_Validation(t *testing.T) {
	s := &Store{}
	ctx := context.Background()

	tests := []struct {
		name string
		q    db.TextQuery
	}{
		{"no index", db.TextQuery{Query: "x", Limit: 1}},
		{"no query", db.TextQuery{IndexName: "idx", Limit: 1}},
		{"zero limit", db.TextQuery{IndexName: "idx", Query: "x"}},
		{"negative offset", db.TextQuery{IndexName: "idx", Query: "x", Limit: 1, Offset: -1}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := s.SearchText(ctx, &tc.q); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestBuildQuery(t *testing.T) {
	got := buildQuery("(jane)", []db.TagFilter{{Field: "privacy", Value: "public"}})
	if got != "@privacy:{public} (jane)" {
		t.Errorf("got %q", got)
	}
	if got := buildQuery("jane", nil); got != "jane" {
		t.Errorf("got %q", got)
	}
}

func isDBError(err error) bool {
	var dbErr *db.Error
	return errors.As(err, &dbErr)
}
