package middlewares

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-pos/utils"
)

const identityKey = "identity"

// Authenticate me-resolve identitas dari header Authorization (atau query
// token untuk websocket). Request tanpa token tetap lewat sebagai anonim;
// guard chain yang memutuskan boleh-tidaknya. Token yang ADA tapi rusak /
// kadaluarsa langsung ditolak di sini.
func Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("Authorization")
		if token != "" {
			if !strings.HasPrefix(token, "Bearer ") {
				utils.RespondError(c, utils.ErrMalformedToken("authorization header must use the Bearer scheme"))
				c.Abort()
				return
			}
			token = strings.TrimPrefix(token, "Bearer ")
		} else {
			token = c.Query("token")
		}

		if token == "" {
			c.Next()
			return
		}

		identity, err := utils.ParseToken(token)
		if err != nil {
			utils.RespondError(c, err)
			c.Abort()
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// GetIdentity mengambil identitas yang di-set oleh Authenticate.
func GetIdentity(c *gin.Context) (utils.Identity, bool) {
	v, exists := c.Get(identityKey)
	if !exists {
		return utils.Identity{}, false
	}
	identity, ok := v.(utils.Identity)
	return identity, ok
}
