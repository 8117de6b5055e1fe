package grpc_control

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"stock-lens/src/analysis"
	"stock-lens/src/config"
	"stock-lens/src/helpers"
	"stock-lens/src/interfaces"
	"stock-lens/src/logger"
	"stock-lens/src/models"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// WatchlistController is the watchlist as managed over gRPC.
type WatchlistController interface {
	interfaces.IWatchlist
	UpdateSymbols(symbols []string)
}

// -----------------------------------------------------------------------------

// ControlService implements ControlServer
type ControlService struct {
	Config       *config.Config
	ConfigPath   string
	Lookups      interfaces.ILookupService
	WatchlistCtl WatchlistController
	Logger       *logger.Logger
}

// NewControlService creates a new instance of ControlService. An empty
// cfgPath disables persisting watchlist changes.
func NewControlService(
	cfg *config.Config,
	cfgPath string,
	lookups interfaces.ILookupService,
	watchlist WatchlistController,
	log *logger.Logger,
) *ControlService {
	return &ControlService{
		Config:       cfg,
		ConfigPath:   cfgPath,
		Lookups:      lookups,
		WatchlistCtl: watchlist,
		Logger:       log,
	}
}

// -----------------------------------------------------------------------------

func (s *ControlService) lookupContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, time.Duration(s.Config.Provider.TimeoutSeconds)*time.Second)
}

// -----------------------------------------------------------------------------

func (s *ControlService) Lookup(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	ticker := strings.TrimSpace(req.GetValue())
	if ticker == "" {
		return nil, status.Error(codes.InvalidArgument, "ticker is required")
	}

	ctx, cancel := s.lookupContext(ctx)
	defer cancel()

	return toStruct(s.Lookups.Lookup(ctx, ticker))
}

// -----------------------------------------------------------------------------

// Table expects {ticker, statement, rows, cols, transpose}; omitted fields
// take the configured defaults.
func (s *ControlService) Table(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	fields := req.GetFields()

	ticker := strings.TrimSpace(fields["ticker"].GetStringValue())
	if ticker == "" {
		return nil, status.Error(codes.InvalidArgument, "ticker is required")
	}

	kind := models.StatementIncome
	if v, ok := fields["statement"]; ok {
		kind = analysis.ParseStatementKind(v.GetStringValue())
		if kind == "" {
			return nil, status.Errorf(codes.InvalidArgument, "unknown statement %q", v.GetStringValue())
		}
	}

	rows := s.Config.Windows.MaxTableRows
	if v, ok := fields["rows"]; ok {
		rows = int(v.GetNumberValue())
	}
	cols := s.Config.Windows.MaxTableCols
	if v, ok := fields["cols"]; ok {
		cols = int(v.GetNumberValue())
	}
	transpose := s.Config.Windows.Transpose
	if v, ok := fields["transpose"]; ok {
		transpose = v.GetBoolValue()
	}

	ctx, cancel := s.lookupContext(ctx)
	defer cancel()

	table, err := s.Lookups.Table(ctx, ticker, kind, rows, cols, transpose)
	if err != nil {
		return nil, toStatus(err)
	}
	return toStruct(table)
}

// -----------------------------------------------------------------------------

func (s *ControlService) Watchlist(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	if s.WatchlistCtl == nil {
		return nil, status.Error(codes.Unavailable, "watchlist disabled")
	}
	return toStruct(s.WatchlistCtl.Snapshot())
}

// -----------------------------------------------------------------------------

func (s *ControlService) RefreshWatchlist(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	if s.WatchlistCtl == nil {
		return nil, status.Error(codes.Unavailable, "watchlist disabled")
	}
	return toStruct(s.WatchlistCtl.Refresh(ctx))
}

// -----------------------------------------------------------------------------

// UpdateWatchlist replaces the tracked tickers and persists them to the
// config file.
func (s *ControlService) UpdateWatchlist(ctx context.Context, req *structpb.ListValue) (*structpb.Struct, error) {
	if s.WatchlistCtl == nil {
		return nil, status.Error(codes.Unavailable, "watchlist disabled")
	}

	var symbols []string
	for i, v := range req.GetValues() {
		sym := strings.TrimSpace(v.GetStringValue())
		if sym == "" {
			return nil, status.Errorf(codes.InvalidArgument, "symbol %d must be a non-empty string", i)
		}
		symbols = append(symbols, sym)
	}
	if len(symbols) == 0 {
		return nil, status.Error(codes.InvalidArgument, "symbols list cannot be empty")
	}

	s.WatchlistCtl.UpdateSymbols(symbols)

	persisted := false
	if s.ConfigPath != "" {
		s.Config.Watchlist.Symbols = symbols
		if err := s.Config.Save(s.ConfigPath); err != nil {
			s.Logger.Error("gRPC: Failed to persist watchlist: %v", err)
		} else {
			persisted = true
		}
	}

	s.Logger.Info("gRPC: UpdateWatchlist success. Count: %d", len(symbols))
	return structpb.NewStruct(map[string]any{
		"success":   true,
		"message":   fmt.Sprintf("Watchlist now tracks %d symbols", len(symbols)),
		"count":     len(symbols),
		"persisted": persisted,
	})
}

// -----------------------------------------------------------------------------
// Conversion
// -----------------------------------------------------------------------------

// toStruct goes through JSON so the struct tags of the models apply.
func toStruct(v any) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode response: %v", err)
	}

	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, status.Errorf(codes.Internal, "decode response: %v", err)
	}

	out, err := structpb.NewStruct(m)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "convert response: %v", err)
	}
	return out, nil
}

// -----------------------------------------------------------------------------

// toStatus maps the error taxonomy onto gRPC codes.
func toStatus(err error) error {
	msg := helpers.Describe(err)
	switch {
	case errors.Is(err, helpers.ErrValidation):
		return status.Error(codes.InvalidArgument, msg)
	case errors.Is(err, helpers.ErrNotFound), errors.Is(err, helpers.ErrEmptyResult):
		return status.Error(codes.NotFound, msg)
	case errors.Is(err, helpers.ErrProviderFailure), errors.Is(err, helpers.ErrIncompleteData):
		return status.Error(codes.Unavailable, msg)
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, msg)
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, msg)
	}
	return status.Error(codes.Internal, msg)
}
