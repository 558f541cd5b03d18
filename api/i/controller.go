// Package i defines the contract every HTTP controller satisfies to be
// mounted by the router.
package i

import "github.com/gin-gonic/gin"

type Controller interface {
	RegisterPublic(*gin.RouterGroup)
	RegisterProtected(*gin.RouterGroup)
}
