package snapshot

import (
	"context"
	stderrors "errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/vango-dev/vtree/internal/errors"
)

func codeOf(err error) string {
	var ve *errors.Error
	if stderrors.As(err, &ve) {
		return ve.Code
	}
	return ""
}

type fakeS3 struct {
	inputs []*s3.PutObjectInput
	bodies []string
	err    error
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.inputs = append(f.inputs, in)
	f.bodies = append(f.bodies, string(body))
	return &s3.PutObjectOutput{}, nil
}

func TestFileStorePut(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "snapshots")
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}

	loc, err := store.Put(context.Background(), "counter", []byte("<p>1</p>"))
	if err != nil {
		t.Fatalf("Put error: %v", err)
	}
	if loc != filepath.Join(dir, "counter.html") {
		t.Errorf("location = %q", loc)
	}
	data, err := os.ReadFile(loc)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "<p>1</p>" {
		t.Errorf("content = %q", data)
	}

	// Overwrite
	if _, err := store.Put(context.Background(), "counter", []byte("<p>2</p>")); err != nil {
		t.Fatal(err)
	}
	data, _ = os.ReadFile(loc)
	if string(data) != "<p>2</p>" {
		t.Errorf("content after overwrite = %q", data)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("dir has %d entries, want 1 (temp files left behind?)", len(entries))
	}
}

func TestInvalidNames(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	s3store := NewS3Store(&fakeS3{}, "bucket", "")

	for _, name := range []string{"", ".", "..", "a/b", `a\b`, "../escape"} {
		if _, err := store.Put(context.Background(), name, nil); codeOf(err) != errors.CodeSnapshotWrite {
			t.Errorf("FileStore.Put(%q) error = %v, want V051", name, err)
		}
		if _, err := s3store.Put(context.Background(), name, nil); codeOf(err) != errors.CodeSnapshotWrite {
			t.Errorf("S3Store.Put(%q) error = %v, want V051", name, err)
		}
	}
}

func TestS3StorePut(t *testing.T) {
	tests := []struct {
		prefix  string
		wantKey string
	}{
		{"", "counter.html"},
		{"previews", "previews/counter.html"},
		{"previews/", "previews/counter.html"},
	}
	for _, tt := range tests {
		t.Run(tt.prefix, func(t *testing.T) {
			client := &fakeS3{}
			store := NewS3Store(client, "bucket", tt.prefix)

			loc, err := store.Put(context.Background(), "counter", []byte("<p>1</p>"))
			if err != nil {
				t.Fatalf("Put error: %v", err)
			}
			if want := "s3://bucket/" + tt.wantKey; loc != want {
				t.Errorf("location = %q, want %q", loc, want)
			}
			if len(client.inputs) != 1 {
				t.Fatalf("PutObject calls = %d, want 1", len(client.inputs))
			}
			in := client.inputs[0]
			if aws.ToString(in.Bucket) != "bucket" || aws.ToString(in.Key) != tt.wantKey {
				t.Errorf("bucket/key = %s/%s", aws.ToString(in.Bucket), aws.ToString(in.Key))
			}
			if aws.ToString(in.ContentType) != "text/html; charset=utf-8" {
				t.Errorf("content type = %q", aws.ToString(in.ContentType))
			}
			if in.Metadata["snapshot-name"] != "counter" {
				t.Errorf("metadata = %v", in.Metadata)
			}
			if client.bodies[0] != "<p>1</p>" {
				t.Errorf("body = %q", client.bodies[0])
			}
		})
	}
}

func TestS3StorePutError(t *testing.T) {
	boom := stderrors.New("access denied")
	store := NewS3Store(&fakeS3{err: boom}, "bucket", "p")

	_, err := store.Put(context.Background(), "counter", nil)
	if codeOf(err) != errors.CodeSnapshotWrite {
		t.Errorf("code = %q, want V051", codeOf(err))
	}
	if !stderrors.Is(err, boom) {
		t.Error("error should wrap the client error")
	}
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name     string
		target   string
		wantType string
		wantCode string
	}{
		{"directory", filepath.Join(dir, "out"), "file", ""},
		{"s3", "s3://bucket/previews", "s3", ""},
		{"empty", "  ", "", errors.CodeSnapshotTarget},
		{"other scheme", "gs://bucket/previews", "", errors.CodeSnapshotTarget},
		{"no bucket", "s3:///previews", "", errors.CodeSnapshotTarget},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := Open(tt.target, S3Config{Region: "eu-west-1"})
			if tt.wantCode != "" {
				if codeOf(err) != tt.wantCode {
					t.Errorf("error = %v, want %s", err, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("Open error: %v", err)
			}
			switch s := store.(type) {
			case *FileStore:
				if tt.wantType != "file" {
					t.Errorf("got FileStore, want %s", tt.wantType)
				}
			case *S3Store:
				if tt.wantType != "s3" {
					t.Errorf("got S3Store, want %s", tt.wantType)
				}
				if s.bucket != "bucket" || s.Key("x") != "previews/x.html" {
					t.Errorf("bucket=%q key=%q", s.bucket, s.Key("x"))
				}
			default:
				t.Errorf("unexpected store %T", store)
			}
		})
	}
}

func TestNewS3ClientOptions(t *testing.T) {
	client := NewS3Client(S3Config{Region: "eu-west-1", Endpoint: "http://localhost:9000", PathStyle: true})
	opts := client.Options()

	if opts.Region != "eu-west-1" {
		t.Errorf("Region = %q", opts.Region)
	}
	if aws.ToString(opts.BaseEndpoint) != "http://localhost:9000" {
		t.Errorf("BaseEndpoint = %q", aws.ToString(opts.BaseEndpoint))
	}
	if !opts.UsePathStyle {
		t.Error("UsePathStyle should be set")
	}
}

func TestEnvCredentials(t *testing.T) {
	t.Setenv("AWS_ACCESS_KEY_ID", "")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "")
	if _, err := envCredentials().Retrieve(context.Background()); err == nil {
		t.Error("expected error without credentials")
	}

	t.Setenv("AWS_ACCESS_KEY_ID", "id")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "secret")
	creds, err := envCredentials().Retrieve(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if creds.AccessKeyID != "id" || creds.SecretAccessKey != "secret" {
		t.Errorf("creds = %+v", creds)
	}
}
