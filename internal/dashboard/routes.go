package dashboard

import (
	"net/http"

	"github.com/alsfleet/fleetmaint/internal/registry"
	"github.com/alsfleet/fleetmaint/internal/store"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// registerRoutes sets up the read-only API routes on the Gin router.
func registerRoutes(router *gin.Engine, db *gorm.DB) {
	router.GET("/healthz", handleHealth())
	router.GET("/api/records", handleRecords(db))
	router.GET("/api/stats", handleStats(db))
	router.GET("/api/vehicles", handleVehicles(db))
	router.GET("/api/destinations", handleDestinations(db))
}

func handleHealth() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// handleRecords lists maintenance records, filtered by query params. Filters
// are substring matches, AND-combined, same as the CLI search.
func handleRecords(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		filters := store.Filters{
			Plate:        c.Query("plate"),
			VehicleLabel: c.Query("vehicle"),
			Destination:  c.Query("destination"),
			Service:      c.Query("service"),
			Status:       c.Query("status"),
			WorkOrder:    c.Query("work_order"),
		}
		recs, err := store.Query(db, filters)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"records": recs, "count": len(recs)})
	}
}

func handleStats(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := store.Stats(db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, stats)
	}
}

func handleVehicles(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		vehicles, err := registry.ActiveVehicles(db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"vehicles": vehicles, "count": len(vehicles)})
	}
}

func handleDestinations(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		dests, err := registry.ActiveDestinations(db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"destinations": dests, "count": len(dests)})
	}
}
