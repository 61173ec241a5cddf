// Package proto holds the gRPC contract of the blog service. The Go code is
// generated from blog.proto and is not committed; run `go generate ./...`
// with protoc, protoc-gen-go and protoc-gen-go-grpc on PATH.
package proto

//go:generate protoc --go_out=. --go_opt=paths=source_relative --go-grpc_out=. --go-grpc_opt=paths=source_relative blog.proto
