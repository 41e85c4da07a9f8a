package main

// General API documentation for swaggo. The generated document lives in
// internal/apidocs.
//
// @title           classifyd API
// @version         1.0
// @description     HTTP API for image classification with a preloaded model.
//
// @contact.name   classifyd maintainers
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
