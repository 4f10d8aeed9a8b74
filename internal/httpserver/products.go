package httpserver

import (
	"log"
	"net/http"
	"strconv"

	"storefront/internal/service/catalog"
	"github.com/gin-gonic/gin"
)

func listProductsHandler(svc catalogService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, err := svc.Search(c.Request.Context(), catalog.SearchInput{
			Query:    c.Query("q"),
			Page:     intQuery(c, "page"),
			PageSize: intQuery(c, "limit"),
		})
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, page)
	}
}

func getProductHandler(svc catalogService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

// intQuery parses an integer query parameter. Absent or malformed values
// come back as zero so the service applies its defaults.
func intQuery(c *gin.Context, name string) int {
	raw := c.Query(name)
	if raw == "" {
		return 0
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return v
}
