package main

// General API documentation for swaggo. Run `make swagger-gen` to generate docs.
//
// @title           translatord API
// @version         1.0
// @description     HTTP API for text translation using pre-trained seq2seq models.
//
// @contact.name   translatord maintainers
// @contact.url    https://github.com/your-org/translatord
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
