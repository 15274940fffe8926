package database

import "skinsense.io/infrastructure/database/connection"

func SetUpDatabase() bool {
	return connection.ConnectToDatabase()
}

type BaseModel interface {
	ParseModel() any
}
