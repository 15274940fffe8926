package infrastructure

type serverInterface interface {
	Start()
}

func StartServer() {
	var server serverInterface = &ginServer{}
	server.Start()
}
