// Command dvdctl tareas de administración: migraciones de las tablas propias y alta de usuarios.
package main

func main() {
	Execute()
}
