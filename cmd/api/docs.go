package main

// @title           Gestor de Compras API
// @version         1.0
// @description     API para gestão de ordens de compra, revenda, comissões e estoque

// @contact.name   Suporte
// @contact.email  suporte@gestor-compras.com.br

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Cabeçalho de autenticação JWT usando o esquema Bearer. Exemplo: "Bearer {token}"
