// Package v1 exposes the ledger over HTTP.
//
// Every resource lives below /v1/users/{userId}. Handlers never touch the
// database directly, all reads and writes go through the ledger service.
package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/sectionledger/backend/internal/ledger"
)

// Controller holds the ledger service the handlers work on.
type Controller struct {
	ledger *ledger.Service
}

func NewController(service *ledger.Service) Controller {
	return Controller{ledger: service}
}

// RegisterRoutes attaches all v1 routes to r.
func (co Controller) RegisterRoutes(r *gin.RouterGroup) {
	users := r.Group("/users")
	co.RegisterUserRoutes(users)

	user := users.Group("/:userId")
	co.RegisterSectionRoutes(user.Group("/sections"))
	co.RegisterTransactionRoutes(user.Group("/transactions"))
	co.RegisterIncomeRoutes(user.Group("/income"))
	co.RegisterDistributionRoutes(user.Group("/distribution"))
	co.RegisterGoalRoutes(user.Group("/goals"))
	co.RegisterInvestmentRoutes(user.Group("/investments"))
	co.RegisterExpenseRoutes(user.Group("/expenses"))
	co.RegisterSummaryRoutes(user.Group("/summary"))
}
