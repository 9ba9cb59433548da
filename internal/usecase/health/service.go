package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates some entity types are short-circuited or unindexed;
	// search still answers with partial results.
	Degraded Status = "degraded"
	// Unhealthy indicates the database is unreachable.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckOpen indicates a retriever breaker is open.
	CheckOpen CheckResult = "open"
	// CheckMissing indicates a search index has not been created.
	CheckMissing CheckResult = "missing"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	db       Database
	indexes  []string
	circuits []CircuitReporter
}

// New creates a Service. indexes and circuits may be empty.
func New(db Database, indexes []string, circuits ...CircuitReporter) *Service {
	return &Service{db: db, indexes: indexes, circuits: circuits}
}

// Check pings the database, looks up every search index and inspects every
// retriever breaker. Indexes are skipped while the database is unreachable.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult, 1+len(s.indexes)+len(s.circuits))

	status := Healthy
	if err := s.db.Ping(ctx); err != nil {
		checks["database"] = CheckError
		status = Unhealthy
	} else {
		checks["database"] = CheckOK
		for _, name := range s.indexes {
			res := s.checkIndex(ctx, name)
			checks["index:"+name] = res
			if res != CheckOK && status == Healthy {
				status = Degraded
			}
		}
	}

	for _, c := range s.circuits {
		key := "retriever:" + c.Name()
		if c.Open() {
			checks[key] = CheckOpen
			if status == Healthy {
				status = Degraded
			}
			continue
		}
		checks[key] = CheckOK
	}

	return Report{Status: status, Checks: checks}
}

func (s *Service) checkIndex(ctx context.Context, name string) CheckResult {
	ok, err := s.db.IndexExists(ctx, name)
	switch {
	case err != nil:
		return CheckError
	case !ok:
		return CheckMissing
	default:
		return CheckOK
	}
}
