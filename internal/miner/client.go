package miner

//go:generate protoc --go_out=. --go_opt=paths=source_relative --go-grpc_out=. --go-grpc_opt=paths=source_relative miner.proto

import (
	"context"
	"fmt"
	"path"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/connectivity"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/bardlex/minegate/pkg/errors"
	"github.com/bardlex/minegate/pkg/log"
)

// Client talks to the remote MinerService over a single shared connection.
// Every call is forwarded exactly once; nothing is cached or retried. It is
// safe for concurrent use by multiple goroutines.
type Client struct {
	conn   *grpc.ClientConn
	rpc    MinerServiceClient
	logger *log.Logger
}

// ClientOptions tunes the connection to the miner service
type ClientOptions struct {
	// Extra dial options, appended after the defaults
	DialOptions []grpc.DialOption
}

// Dial creates a client for addr. The connection is established lazily; use
// Ping to wait for readiness.
func Dial(addr string, logger *log.Logger, opts ClientOptions) (*Client, error) {
	if logger == nil {
		logger = log.Nop()
	}

	client := &Client{
		logger: logger.WithComponent("miner").WithFields("target", addr),
	}

	dialOpts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithChainUnaryInterceptor(client.logCall),
	}, opts.DialOptions...)

	conn, err := grpc.NewClient(addr, dialOpts...)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeInternal, "dial",
			fmt.Sprintf("invalid miner address %q", addr))
	}

	client.conn = conn
	client.rpc = NewMinerServiceClient(conn)
	return client, nil
}

// logCall records the outcome and latency of every unary call
func (c *Client) logCall(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
	start := time.Now()
	err := invoker(ctx, method, req, reply, cc, opts...)
	c.logger.WithContext(ctx).LogRemoteCall(path.Base(method), time.Since(start), err)
	return err
}

// StartMining implements Service
func (c *Client) StartMining(ctx context.Context, params StartParams) (string, error) {
	resp, err := c.rpc.StartMining(ctx, &StartMiningRequest{
		Hash:      params.Hash,
		Addr1:     params.Addr1,
		Addr2:     params.Addr2,
		Value:     params.Value,
		Timestamp: params.Timestamp,
		Target:    params.Target,
		TimeLimit: params.TimeLimit,
		Flag:      params.Flag,
	})
	if err != nil {
		return "", classify("start_mining", err, false)
	}

	if !resp.GetSuccess() {
		msg := resp.GetMessage()
		if msg == "" {
			msg = MsgStartFailed
		}
		return "", errors.New(errors.ErrorTypeDeclined, "start_mining", msg)
	}

	if resp.GetSessionId() == "" {
		return "", errors.New(errors.ErrorTypeContract, "start_mining", MsgNoSessionID)
	}

	return resp.GetSessionId(), nil
}

// PauseMining implements Service
func (c *Client) PauseMining(ctx context.Context, sessionID string) (string, error) {
	resp, err := c.rpc.PauseMining(ctx, &PauseMiningRequest{SessionId: sessionID})
	if err != nil {
		return "", classify("pause_mining", err, false)
	}
	return resp.GetStateFile(), nil
}

// ResumeMining implements Service
func (c *Client) ResumeMining(ctx context.Context, stateFile string) (string, error) {
	resp, err := c.rpc.ResumeMining(ctx, &ResumeMiningRequest{StateFile: stateFile})
	if err != nil {
		return "", classify("resume_mining", err, false)
	}

	if resp.GetSessionId() == "" {
		return "", errors.New(errors.ErrorTypeContract, "resume_mining", MsgNoSessionID)
	}

	return resp.GetSessionId(), nil
}

// GetStatus implements Service
func (c *Client) GetStatus(ctx context.Context, sessionID string) (*Status, error) {
	resp, err := c.rpc.GetStatus(ctx, &GetStatusRequest{SessionId: sessionID})
	if err != nil {
		return nil, classify("get_status", err, true)
	}

	return &Status{
		IsMining:     resp.GetIsMining(),
		CurrentNonce: resp.GetCurrentNonce(),
		TotalHashes:  resp.GetTotalHashes(),
		HashRate:     resp.GetHashRate(),
		Message:      resp.GetMessage(),
	}, nil
}

// Ping waits until the connection is ready or ctx expires
func (c *Client) Ping(ctx context.Context) error {
	c.conn.Connect()

	for {
		state := c.conn.GetState()
		switch state {
		case connectivity.Ready:
			return nil
		case connectivity.Shutdown:
			return errors.New(errors.ErrorTypeInternal, "ping", "miner connection is closed")
		}

		if !c.conn.WaitForStateChange(ctx, state) {
			return errors.Wrap(ctx.Err(), errors.ErrorTypeUnavailable, "ping", MsgUnavailable).
				WithContext("state", state.String())
		}
	}
}

// Health reports an error when the connection is known to be broken.
// Idle and connecting channels count as healthy since they reconnect on demand.
func (c *Client) Health(_ context.Context) error {
	state := c.conn.GetState()
	switch state {
	case connectivity.TransientFailure, connectivity.Shutdown:
		return errors.New(errors.ErrorTypeUnavailable, "health", MsgUnavailable).
			WithContext("state", state.String())
	}
	return nil
}

// State returns the connectivity state name
func (c *Client) State() string {
	return c.conn.GetState().String()
}

// Close releases the connection
func (c *Client) Close() error {
	return c.conn.Close()
}
