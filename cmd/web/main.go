// @title           Freelance marketplace API
// @version         1.0
// @description     Уведомления, профили и служебные эндпоинты фриланс-биржи.
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:4000
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import "freelance_backend/internal/app"

func main() {
	app.Run()
}
