package connection

import (
	"skinsense.io/infrastructure/database/connection/datastore"
)

func ConnectToDatabase() bool {
	return datastore.ConnectToDatabase()
}
