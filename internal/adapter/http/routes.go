package http

import "github.com/labstack/echo/v4"

// Handlers groups everything Register mounts.
type Handlers struct {
	Health    *Handler
	People    *PeopleHandler
	ViewMode  *ViewModeHandler
	Purchase  *PurchaseHandler
	Reimburse *ReimburseHandler
	Funding   *FundingSourceHandler
	Files     *FileHandler
}

// Register mounts the API. auth guards everything under /api except signed
// file links; idem wraps every mutating route and must see the actor, so it
// runs after auth.
func Register(e *echo.Echo, h Handlers, auth, idem echo.MiddlewareFunc) {
	e.GET("/health", h.Health.Health)
	e.GET("/api/files/:token", h.Files.Download)

	api := e.Group("/api", auth)

	people := api.Group("/people")
	people.GET("/roles", h.People.ListRoles)
	people.POST("/roles", h.People.CreateRole, idem)
	people.PUT("/roles/order", h.People.ReorderRoles, idem)
	people.PUT("/roles/:id", h.People.UpdateRole, idem)
	people.DELETE("/roles/:id", h.People.DeleteRole, idem)
	people.GET("/permissions", h.People.ListPermissions)
	people.GET("/permissions/:role_id", h.People.GetPermission)
	people.PUT("/permissions/:role_id/flags/:flag", h.People.SetFlag, idem)
	people.PUT("/permissions/:role_id/visibility", h.People.SetVisibility, idem)
	people.GET("/permissions/:role_id/effective", h.People.Effective)

	fin := api.Group("/finance")
	fin.GET("/view-mode", h.ViewMode.Get)
	fin.PUT("/view-mode", h.ViewMode.Set, idem)
	fin.DELETE("/view-mode", h.ViewMode.Clear, idem)

	pr := fin.Group("/purchases")
	pr.GET("", h.Purchase.List)
	pr.POST("", h.Purchase.Create, idem)
	pr.GET("/export", h.Purchase.Export)
	pr.GET("/:id", h.Purchase.Get)
	pr.PUT("/:id", h.Purchase.Update, idem)
	pr.DELETE("/:id", h.Purchase.Delete, idem)
	pr.POST("/:id/submit", h.Purchase.Submit, idem)
	pr.POST("/:id/approve", h.Purchase.Approve, idem)
	pr.POST("/:id/revision", h.Purchase.RequestRevision, idem)
	pr.POST("/:id/reject", h.Purchase.Reject, idem)
	pr.POST("/:id/pay", h.Purchase.Pay, idem)
	pr.POST("/:id/cancel", h.Purchase.Cancel, idem)
	pr.POST("/:id/stage", h.Purchase.UpdateStage, idem)
	pr.GET("/:id/history", h.Purchase.History)

	rb := fin.Group("/reimburses")
	rb.GET("", h.Reimburse.List)
	rb.POST("", h.Reimburse.Create, idem)
	rb.GET("/export", h.Reimburse.Export)
	rb.GET("/:id", h.Reimburse.Get)
	rb.PUT("/:id", h.Reimburse.Update, idem)
	rb.DELETE("/:id", h.Reimburse.Delete, idem)
	rb.POST("/:id/submit", h.Reimburse.Submit, idem)
	rb.POST("/:id/approve", h.Reimburse.Approve, idem)
	rb.POST("/:id/reject", h.Reimburse.Reject, idem)
	rb.POST("/:id/pay", h.Reimburse.Pay, idem)
	rb.GET("/:id/history", h.Reimburse.History)

	fs := fin.Group("/funding-sources")
	fs.GET("", h.Funding.List)
	fs.POST("", h.Funding.Create, idem)
	fs.PUT("/:id", h.Funding.Update, idem)
	fs.DELETE("/:id", h.Funding.Delete, idem)
	fs.POST("/:id/active", h.Funding.SetActive, idem)
	fs.POST("/:id/archive", h.Funding.SetArchived, idem)
	fs.POST("/:id/move", h.Funding.Move, idem)
	fs.POST("/:id/top-up", h.Funding.TopUp, idem)

	fin.POST("/files", h.Files.Upload, idem)
	fin.PUT("/files", h.Files.Replace, idem)
}
