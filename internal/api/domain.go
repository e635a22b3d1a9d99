package api

import (
	"github.com/JaimeStill/agent-lab-client/internal/catalog"
	"github.com/JaimeStill/agent-lab-client/internal/evaluations"
	"github.com/JaimeStill/agent-lab-client/internal/infrastructure"
	"github.com/JaimeStill/agent-lab-client/internal/models"
	"github.com/JaimeStill/agent-lab-client/internal/providers"
)

// Domain holds the access systems and the cached catalog built over them.
type Domain struct {
	Providers   providers.System
	Models      models.System
	Evaluations evaluations.System
	Catalog     *catalog.Catalog
}

// NewDomain creates all domain systems from the shared infrastructure.
func NewDomain(infra *infrastructure.Infrastructure) *Domain {
	providersSys := providers.New(infra.Transport, infra.Endpoints, infra.Logger)
	modelsSys := models.New(infra.Transport, infra.Endpoints, infra.Logger)
	evaluationsSys := evaluations.New(infra.Transport, infra.Endpoints, infra.Logger)

	return &Domain{
		Providers:   providersSys,
		Models:      modelsSys,
		Evaluations: evaluationsSys,
		Catalog: catalog.New(
			providersSys,
			modelsSys,
			evaluationsSys,
			infra.Graph,
			infra.Logger,
		),
	}
}
