package services

// HealthService reports process liveness. Database reachability is left to
// the infrastructure probes; this only confirms the server is serving.
type HealthService struct{}

func NewHealthService() *HealthService {
	return &HealthService{}
}

func (s *HealthService) Get() error {
	return nil
}
